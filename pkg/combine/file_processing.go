package combine

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ProcessSingleFile reads the whole file and formats it as one output block
// headed by displayPath.
func ProcessSingleFile(filePath, displayPath string, logger *zap.Logger) (FileContent, error) {
	logger.Debug("Reading file content", zap.String("filePath", filePath))

	fileBytes, readErr := os.ReadFile(filePath)
	if readErr != nil {
		return FileContent{}, fmt.Errorf("error reading file %s: %w", filePath, readErr)
	}

	logger.Debug("Successfully read file content",
		zap.String("filePath", filePath),
		zap.Int("contentSizeBytes", len(fileBytes)))

	return FileContent{
		Path:    displayPath,
		Content: FormatBlock(displayPath, DecodeLossy(fileBytes)),
	}, nil
}

// FormatBlock renders one file's contribution to the output:
//
//	==== <path> ====
//	<content>
//	<blank line>
func FormatBlock(displayPath, content string) string {
	var b strings.Builder
	b.Grow(len(displayPath) + len(content) + 12)
	b.WriteString("==== ")
	b.WriteString(displayPath)
	b.WriteString(" ====\n")
	b.WriteString(content)
	b.WriteString("\n\n")
	return b.String()
}

// DecodeLossy decodes UTF-8, dropping a leading byte order mark and writing
// one U+FFFD for every invalid byte.
func DecodeLossy(content []byte) string {
	decoded, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), content)
	if err != nil {
		return strings.ToValidUTF8(string(content), string(utf8.RuneError))
	}
	return string(decoded)
}
