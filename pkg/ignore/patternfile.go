package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// LocalPatternFile is the per-project ignore file looked up in the working directory.
const LocalPatternFile = ".fcatignore"

// GlobalPatternFileEnv names the environment variable holding a global ignore file path.
const GlobalPatternFileEnv = "FCAT_IGNORE_GLOBAL"

// LoadPatternFiles reads each non-empty path in order and returns all
// pattern lines. Missing files are skipped.
func LoadPatternFiles(logger *zap.Logger, paths ...string) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var patterns []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		lines, err := ReadPatternFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
				continue
			}
			logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
			return nil, err
		}
		logger.Debug("Loaded ignore file", zap.String("filePath", path), zap.Int("patternCount", len(lines)))
		patterns = append(patterns, lines...)
	}
	return patterns, nil
}

// ReadPatternFile returns the pattern lines of an ignore file. Blank lines and
// lines starting with '#' are dropped; a leading "\#" escapes a literal '#'.
func ReadPatternFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ignore file %s: %w", path, err)
	}
	return ParsePatternLines(string(content)), nil
}

// ParsePatternLines splits ignore file content into pattern lines.
func ParsePatternLines(content string) []string {
	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, `\#`) {
			line = line[1:]
		}
		patterns = append(patterns, line)
	}
	return patterns
}
