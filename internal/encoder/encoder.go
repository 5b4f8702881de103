// Package encoder reads file content and prepares it for embedding in the generated document.
package encoder

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/treegen/internal/language"
	"github.com/temirov/treegen/internal/types"
)

const (
	// ContentTooLargePlaceholder replaces content whose read reached the character cap.
	ContentTooLargePlaceholder = "// File content too large to display"
	// BinaryPlaceholder replaces content that is not valid UTF-8.
	BinaryPlaceholder = "Binary file not shown"

	warningReadFileMessage = "Warning: could not read file"
)

// Content is the text carried by a file node together with the way it is embedded.
type Content struct {
	Text     string
	Strategy types.EmbeddingStrategy
}

// placeholder returns content that is always embedded as an escaped string.
func placeholder(text string) Content {
	return Content{Text: text, Strategy: types.EscapedStringLiteral}
}

// Encoder reads files up to a character cap.
type Encoder struct {
	maxReadLength int
	logger        *zap.Logger
}

// NewEncoder returns an Encoder. A nil logger discards diagnostics.
func NewEncoder(maxReadLength int, logger *zap.Logger) *Encoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Encoder{maxReadLength: maxReadLength, logger: logger}
}

// Encode reads the file at path and returns its embeddable content.
// Read failures are logged and yield empty content.
//
// #nosec G304
func (encoder *Encoder) Encode(path string) Content {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		encoder.logger.Warn(warningReadFileMessage, zap.String("path", path), zap.Error(openError))
		return placeholder("")
	}
	defer fileHandle.Close()

	// No rune is longer than utf8.UTFMax bytes, so this limit always covers maxReadLength characters.
	limitedReader := io.LimitReader(fileHandle, int64(encoder.maxReadLength)*utf8.UTFMax)
	data, readError := io.ReadAll(limitedReader)
	if readError != nil {
		encoder.logger.Warn(warningReadFileMessage, zap.String("path", path), zap.Error(readError))
		return placeholder("")
	}

	text, decodeResult := decodeCapped(data, encoder.maxReadLength)
	switch decodeResult {
	case decodeInvalid:
		return placeholder(BinaryPlaceholder)
	case decodeCapReached:
		return placeholder(ContentTooLargePlaceholder)
	}

	strategy := language.StrategyFor(filepath.Base(path))
	if strategy == types.RawMultilineLiteral {
		text = NormalizeLineEndings(text)
	}
	return Content{Text: text, Strategy: strategy}
}

type decodeResult int

const (
	decodeComplete decodeResult = iota
	decodeInvalid
	decodeCapReached
)

// decodeCapped walks data as UTF-8 and stops once maxCharacters runes were decoded.
func decodeCapped(data []byte, maxCharacters int) (string, decodeResult) {
	characterCount := 0
	for offset := 0; offset < len(data); {
		runeValue, runeSize := utf8.DecodeRune(data[offset:])
		if runeValue == utf8.RuneError && runeSize <= 1 {
			return "", decodeInvalid
		}
		offset += runeSize
		characterCount++
		if characterCount >= maxCharacters {
			return "", decodeCapReached
		}
	}
	return string(data), decodeComplete
}

var lineEndingNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeLineEndings converts CRLF and lone CR line terminators to LF.
func NormalizeLineEndings(text string) string {
	return lineEndingNormalizer.Replace(text)
}
