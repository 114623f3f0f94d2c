// Package output hands the combined text to its destination: standard
// output, a file, or the system clipboard.
package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fcat/pkg/clipboard"

	"go.uber.org/zap"
)

// DefaultFile is used when the output flag is given without a value.
const DefaultFile = "paste.txt"

// Copier copies text to a clipboard.
type Copier interface {
	Copy(ctx context.Context, content string) (clipboard.Command, error)
}

// Target selects where the content goes. With neither File nor Clipboard set
// the content is written to Stdout.
type Target struct {
	File      string
	Clipboard bool
	Stdout    io.Writer
}

// Delivery reports where the content went.
type Delivery struct {
	File      string            // written file, if any
	Clipboard clipboard.Command // utility used, if any
	Stdout    bool
	Bytes     int
}

// Deliver writes content to every destination selected by t.
func Deliver(ctx context.Context, content string, t Target, copier Copier, logger *zap.Logger) (Delivery, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := Delivery{Bytes: len(content)}

	if t.File != "" {
		if err := WriteCombinedFile(t.File, content, logger); err != nil {
			return d, err
		}
		d.File = t.File
	}

	if t.Clipboard {
		if copier == nil {
			copier = clipboard.New()
		}
		cmd, err := copier.Copy(ctx, content)
		if err != nil {
			logger.Error("Failed to copy to clipboard", zap.Error(err))
			return d, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		logger.Debug("Copied output to clipboard", zap.Stringer("command", cmd), zap.Int("bytes", len(content)))
		d.Clipboard = cmd
	}

	if t.File == "" && !t.Clipboard {
		w := t.Stdout
		if w == nil {
			w = os.Stdout
		}
		if err := WriteTo(w, content); err != nil {
			return d, fmt.Errorf("failed to write output: %w", err)
		}
		d.Stdout = true
	}
	return d, nil
}

// WriteTo writes content to w through a buffered writer.
func WriteTo(w io.Writer, content string) error {
	writer := bufio.NewWriter(w)
	if _, err := writer.WriteString(content); err != nil {
		return err
	}
	return writer.Flush()
}

// WriteCombinedFile writes content to outputPath, creating parent directories.
func WriteCombinedFile(outputPath, content string, logger *zap.Logger) error {
	logger.Debug("Writing combined content to output file", zap.String("combinedFile", outputPath))

	if err := ensureDirectory(filepath.Dir(outputPath), logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(err))
		}
	}()

	if err := WriteTo(outFile, content); err != nil {
		logger.Error("Failed to write combined file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
