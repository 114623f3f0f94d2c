package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Gitignore holds the rules of a single root's .gitignore file.
// A nil *Gitignore matches nothing.
type Gitignore struct {
	path  string
	rules *gitignore.GitIgnore
}

// LoadGitignore compiles root/.gitignore. It returns (nil, nil) when root is
// not a directory or has no .gitignore.
func LoadGitignore(root string) (*Gitignore, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	rules, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return &Gitignore{path: path, rules: rules}, nil
}

// Path returns the .gitignore file the rules were read from.
func (g *Gitignore) Path() string {
	if g == nil {
		return ""
	}
	return g.path
}

// MatchesPath reports whether the root-relative path is ignored by the rules.
func (g *Gitignore) MatchesPath(path string) bool {
	if g == nil {
		return false
	}
	normalized := NormalizePath(path)
	if normalized == "" {
		return false
	}
	return g.rules.MatchesPath(normalized)
}
