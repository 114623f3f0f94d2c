// Package ignore compiles the ignore set used to exclude paths from the
// combined output.
//
// A Set always starts with the built-in DefaultPatterns. User patterns are
// additive and each one expands independently into up to three globs:
//
//	name        -> name, **/name, **/name/**
//	*.log       -> *.log, **/*.log
//	docs/*.md   -> docs/*.md
//
// Globs use doublestar syntax (*, ?, [...], **) and are matched
// case-sensitively against forward-slash relative paths.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Source tells where a compiled pattern came from.
type Source int

const (
	SourceDefault Source = iota // built-in extension list
	SourceUser                  // supplied by the caller
)

func (s Source) String() string {
	if s == SourceDefault {
		return "default"
	}
	return "user"
}

// IgnorePattern is a single compiled glob and the pattern line it was expanded from.
type IgnorePattern struct {
	Glob   string // Glob passed to doublestar.
	Line   string // Trimmed pattern as supplied.
	LineNo int    // Position of Line within its source (1-based).
	Source Source
}

// Set is an immutable, compiled collection of ignore globs.
type Set struct {
	patterns []*IgnorePattern
	logger   *zap.Logger
}

// PatternError reports a glob that failed to compile.
type PatternError struct {
	Pattern string // the glob that failed
	Line    string // the pattern line it was expanded from
	Err     error
}

func (e *PatternError) Error() string {
	if e.Line != "" && e.Line != e.Pattern {
		return fmt.Sprintf("invalid glob pattern %q (from %q): %v", e.Pattern, e.Line, e.Err)
	}
	return fmt.Sprintf("invalid glob pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Compile builds a Set from the built-in defaults followed by userPatterns.
// Compilation stops at the first glob that does not parse; no partial Set is
// ever returned.
func Compile(userPatterns []string, logger *zap.Logger) (*Set, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Set{logger: logger}

	for i, p := range defaultPatterns {
		if err := s.add(p, i+1, SourceDefault); err != nil {
			return nil, err
		}
	}

	added := 0
	for i, raw := range userPatterns {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if err := s.add(line, i+1, SourceUser); err != nil {
			return nil, err
		}
		added++
	}

	logger.Debug("Compiled ignore set",
		zap.Int("defaultPatterns", len(defaultPatterns)),
		zap.Int("userPatterns", added),
		zap.Int("totalGlobs", len(s.patterns)))
	return s, nil
}

// add expands line and appends every resulting glob.
func (s *Set) add(line string, lineNo int, src Source) error {
	for _, glob := range Expand(line) {
		if !doublestar.ValidatePattern(glob) {
			s.logger.Error("Invalid glob pattern",
				zap.String("glob", glob),
				zap.String("pattern", line),
				zap.Stringer("source", src))
			return &PatternError{Pattern: glob, Line: line, Err: doublestar.ErrBadPattern}
		}
		s.patterns = append(s.patterns, &IgnorePattern{
			Glob:   glob,
			Line:   line,
			LineNo: lineNo,
			Source: src,
		})
	}
	return nil
}

// Expand returns the globs a single pattern contributes. The pattern itself is
// always first. A pattern without a slash also matches at any depth, and if it
// has no wildcard either it also matches everything beneath a directory of
// that name. Expand assumes pattern is already trimmed and non-empty.
func Expand(pattern string) []string {
	globs := []string{pattern}
	if strings.Contains(pattern, "/") {
		return globs
	}
	globs = append(globs, "**/"+pattern)
	if !hasWildcard(pattern) {
		globs = append(globs, "**/"+pattern+"/**")
	}
	return globs
}

func hasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// Len returns the number of compiled globs.
func (s *Set) Len() int {
	return len(s.patterns)
}

// Patterns returns the compiled globs in compilation order.
func (s *Set) Patterns() []IgnorePattern {
	out := make([]IgnorePattern, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = *p
	}
	return out
}

// MatchesPath reports whether path matches any glob in the set.
func (s *Set) MatchesPath(path string) bool {
	matches, _ := s.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern reports whether path matches any glob in the set and
// returns the first pattern that did.
func (s *Set) MatchesPathWithPattern(path string) (bool, *IgnorePattern) {
	normalizedPath := NormalizePath(path)
	if normalizedPath == "" {
		return false, nil
	}

	for _, pattern := range s.patterns {
		// Globs were validated in Compile, so Match cannot fail here.
		if ok, _ := doublestar.Match(pattern.Glob, normalizedPath); ok {
			s.logger.Debug("Path matches ignore pattern",
				zap.String("path", normalizedPath),
				zap.String("glob", pattern.Glob),
				zap.String("pattern", pattern.Line),
				zap.Stringer("source", pattern.Source))
			return true, pattern
		}
	}
	return false, nil
}

// NormalizePath converts a relative path to forward slashes and drops empty
// and "." components, so "./src/./main.go" becomes "src/main.go".
func NormalizePath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "/")
}
