// Package language maps file extensions to language tags and embedding strategies.
package language

import (
	"path/filepath"
	"strings"

	"github.com/temirov/treegen/internal/types"
)

// Plaintext is the tag assigned to files with an unrecognized extension.
const Plaintext = "plaintext"

var extensionLanguages = map[string]string{
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".py":   "python",
	".go":   "go",
	".rs":   "rust",
	".json": "json",
	".css":  "css",
	".scss": "scss",
	".html": "html",
	".md":   "markdown",
	".yaml": "yaml",
	".yml":  "yaml",
	".lock": "yaml",
}

var rawMultilineExtensions = map[string]struct{}{
	".ts":  {},
	".tsx": {},
	".js":  {},
	".jsx": {},
}

const passThroughExtension = ".css"

// extensionOf returns the lower-cased extension of fileName. A leading dot alone
// does not start an extension, so ".lock" has none.
func extensionOf(fileName string) string {
	if !strings.Contains(strings.TrimPrefix(fileName, "."), ".") {
		return ""
	}
	return strings.ToLower(filepath.Ext(fileName))
}

// Detect returns the language tag for fileName. Matching is case-insensitive on the extension.
func Detect(fileName string) string {
	if languageTag, known := extensionLanguages[extensionOf(fileName)]; known {
		return languageTag
	}
	return Plaintext
}

// StrategyFor returns the embedding strategy used for the content of fileName.
func StrategyFor(fileName string) types.EmbeddingStrategy {
	extension := extensionOf(fileName)
	if extension == passThroughExtension {
		return types.PassThroughRaw
	}
	if _, isSource := rawMultilineExtensions[extension]; isSource {
		return types.RawMultilineLiteral
	}
	return types.EscapedStringLiteral
}
