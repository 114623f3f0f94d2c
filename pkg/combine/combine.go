// Package combine walks root paths, filters their files through the ignore
// set and a text heuristic, and concatenates what survives into one labelled
// text buffer.
package combine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fcat/pkg/ignore"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// IgnoreParser matches root-relative paths against ignore rules.
type IgnoreParser interface {
	MatchesPath(path string) bool
}

// Aggregator combines the text files found under a set of roots.
// It is not safe for concurrent use; create one per goroutine.
type Aggregator struct {
	logger    *zap.Logger
	gitignore bool
	classify  func(path string) (Verdict, error)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithGitignore makes the Aggregator honour each root directory's .gitignore.
func WithGitignore(enabled bool) Option {
	return func(a *Aggregator) {
		a.gitignore = enabled
	}
}

// New returns an Aggregator. A nil logger disables logging.
func New(logger *zap.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{logger: logger, classify: Classify}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunCombine orchestrates the file combination process for args.
func RunCombine(args *Arguments, logger *zap.Logger) (Result, error) {
	return New(logger, WithGitignore(args.Gitignore)).Aggregate(args.Paths, args.IgnorePatterns)
}

// Aggregate concatenates every accepted file under roots, in root order and
// then walk order. The call fails as a unit: on error no partial output is
// returned.
func (a *Aggregator) Aggregate(roots, ignorePatterns []string) (Result, error) {
	startTime := time.Now()
	a.logger.Info("Starting combination process", zap.Strings("paths", roots))

	set, err := ignore.Compile(ignorePatterns, a.logger)
	if err != nil {
		var pe *ignore.PatternError
		if errors.As(err, &pe) {
			return Result{}, &Error{Kind: KindInvalidPattern, Path: pe.Line, Err: err}
		}
		return Result{}, &Error{Kind: KindInvalidPattern, Err: err}
	}

	var (
		out    strings.Builder
		result Result
	)
	for _, root := range roots {
		if err := a.collectRoot(root, set, &out, &result); err != nil {
			a.logger.Error("Combination aborted", zap.String("root", root), zap.Error(err))
			return Result{}, err
		}
	}

	if len(result.Files) == 0 {
		return Result{}, &Error{Kind: KindEmptyResult}
	}
	result.Output = out.String()

	a.logger.Info("Combination process completed",
		zap.Int("totalFiles", len(result.Files)),
		zap.Int("ignoredFiles", result.Ignored),
		zap.Int("nonTextFiles", result.NotText),
		zap.Int("unreadableFiles", len(multierr.Errors(result.Skipped))),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// collectRoot walks a single root and appends the blocks of its accepted files.
func (a *Aggregator) collectRoot(root string, set *ignore.Set, out *strings.Builder, result *Result) error {
	if _, err := os.Stat(root); err != nil {
		return &Error{Kind: KindPathNotFound, Path: root, Err: err}
	}

	var matchers []IgnoreParser
	matchers = append(matchers, set)
	if a.gitignore {
		gi, err := ignore.LoadGitignore(root)
		if err != nil {
			a.logger.Warn("Failed to load .gitignore, continuing without it", zap.String("root", root), zap.Error(err))
		} else if gi != nil {
			a.logger.Debug("Loaded .gitignore", zap.String("file", gi.Path()))
			matchers = append(matchers, gi)
		}
	}

	a.logger.Debug("Processing root", zap.String("root", root))
	for entry := range Walk(root, a.logger) {
		if entry.Kind != EntryFile {
			continue
		}

		relPath := entry.Rel
		if relPath == "" {
			// The root itself is a file.
			relPath = filepath.Base(entry.Path)
		}
		relPath = ignore.NormalizePath(relPath)

		if matchesAny(matchers, relPath) {
			a.logger.Debug("Skipping ignored file", zap.String("filePath", entry.Path), zap.String("relPath", relPath))
			result.Ignored++
			continue
		}

		verdict, err := a.classify(entry.Path)
		if err != nil {
			if errors.Is(err, ErrDecode) {
				return err
			}
			return fmt.Errorf("failed to classify %s: %w", entry.Path, err)
		}
		if !verdict.Text {
			a.logger.Debug("Skipping non-text file",
				zap.String("filePath", entry.Path),
				zap.String("reason", string(verdict.Reason)),
				zap.Float64("printableRatio", verdict.Ratio))
			result.NotText++
			continue
		}

		content, err := ProcessSingleFile(entry.Path, entry.Path, a.logger)
		if err != nil {
			a.logger.Warn("Skipping unreadable file", zap.String("filePath", entry.Path), zap.Error(err))
			result.Skipped = multierr.Append(result.Skipped, err)
			continue
		}

		out.WriteString(content.Content)
		result.Files = append(result.Files, content.Path)
	}
	return nil
}

func matchesAny(matchers []IgnoreParser, relPath string) bool {
	for _, m := range matchers {
		if m.MatchesPath(relPath) {
			return true
		}
	}
	return false
}

// Aggregate is a shorthand for New(logger).Aggregate that returns only the text.
func Aggregate(roots, ignorePatterns []string, logger *zap.Logger) (string, error) {
	result, err := New(logger).Aggregate(roots, ignorePatterns)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}
