// File: pkg/combine/execute.go
package combine

import (
	"fmt"
	"os"

	"fcat/pkg/ignore"

	"go.uber.org/zap"
)

// PatternSources lists every place user ignore patterns can come from.
type PatternSources struct {
	Config     []string // patterns from the YAML config file
	IgnoreFile string   // local ignore file, missing is fine
	GlobalFile string   // global ignore file; empty falls back to $FCAT_IGNORE_GLOBAL
	Flags      []string // patterns given on the command line
}

// CollectIgnorePatterns merges the sources in a fixed order: config, local
// ignore file, global ignore file, flags. Patterns are only ever added.
func CollectIgnorePatterns(src PatternSources, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	globalIgnorePath := src.GlobalFile
	if globalIgnorePath == "" {
		globalIgnorePath = os.Getenv(ignore.GlobalPatternFileEnv)
	}

	patterns := append([]string(nil), src.Config...)

	filePatterns, err := ignore.LoadPatternFiles(logger, src.IgnoreFile, globalIgnorePath)
	if err != nil {
		logger.Error("Failed to load ignore patterns", zap.Error(err))
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	patterns = append(patterns, filePatterns...)

	if len(src.Flags) > 0 {
		patterns = append(patterns, src.Flags...)
		logger.Debug("Added command-line ignore patterns", zap.Int("count", len(src.Flags)))
	}

	logger.Debug("Collected ignore patterns", zap.Int("totalPatterns", len(patterns)))
	return patterns, nil
}
