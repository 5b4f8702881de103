// Package generate runs the scan, render and write pipeline that produces the file explorer document.
package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/treegen/internal/commands"
	"github.com/temirov/treegen/internal/config"
	"github.com/temirov/treegen/internal/output"
	"github.com/temirov/treegen/internal/services/clipboard"
	"github.com/temirov/treegen/internal/tokenizer"
)

const (
	outputDirectoryPermissions = 0o755
	outputFilePermissions      = 0o644

	errorEmptyRootMessage       = "generate: root path is empty"
	errorEmptyOutputMessage     = "generate: output path is empty"
	errorCreateDirectoryFormat  = "create output directory %s: %w"
	errorWriteOutputFormat      = "write %s: %w"
	errorCopyFormat             = "copy document to clipboard: %w"
	errorCountTokensFormat      = "count tokens: %w"
	generatedDocumentLogMessage = "generated document"
)

// Options configures a single generation run.
type Options struct {
	RootPath      string
	OutputPath    string
	Configuration config.ScanConfiguration
	Preview       bool
	// Copier is optional; when set the document is also copied.
	Copier clipboard.Copier
	// TokenCounter is optional; when set the document's tokens are counted.
	TokenCounter tokenizer.Counter
}

// Result describes a completed run.
type Result struct {
	OutputPath string
	Document   string
	Preview    string
	Tokens     int
	Copied     bool
}

// Service generates file explorer documents.
type Service struct {
	logger *zap.Logger
}

// NewService returns a Service. A nil logger discards diagnostics.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Generate scans options.RootPath, renders the document and writes it to options.OutputPath.
// Per-file problems are logged during the scan; only failures of the whole run are returned.
func (service *Service) Generate(options Options) (Result, error) {
	if options.RootPath == "" {
		return Result{}, errors.New(errorEmptyRootMessage)
	}
	if options.OutputPath == "" {
		return Result{}, errors.New(errorEmptyOutputMessage)
	}

	treeBuilder := commands.NewTreeBuilder(options.Configuration, service.logger)
	projectRoot, buildError := treeBuilder.BuildProjectRoot(options.RootPath)
	if buildError != nil {
		return Result{}, buildError
	}

	document, renderError := output.RenderTypeScript(projectRoot)
	if renderError != nil {
		return Result{}, renderError
	}

	result := Result{OutputPath: options.OutputPath, Document: document}
	if options.Preview {
		preview, previewError := output.RenderPreview(projectRoot)
		if previewError != nil {
			return Result{}, previewError
		}
		result.Preview = preview
	}

	if writeError := writeDocument(options.OutputPath, document); writeError != nil {
		return Result{}, writeError
	}
	service.logger.Debug(generatedDocumentLogMessage, zap.String("path", options.OutputPath), zap.Int("bytes", len(document)))

	if options.Copier != nil {
		if copyError := options.Copier.Copy(document); copyError != nil {
			return Result{}, fmt.Errorf(errorCopyFormat, copyError)
		}
		result.Copied = true
	}

	if options.TokenCounter != nil {
		tokens, countError := tokenizer.CountDocument(options.TokenCounter, document)
		if countError != nil {
			return Result{}, fmt.Errorf(errorCountTokensFormat, countError)
		}
		result.Tokens = tokens
	}

	return result, nil
}

// writeDocument writes document to outputPath, creating missing parent directories.
func writeDocument(outputPath string, document string) error {
	outputDirectory := filepath.Dir(outputPath)
	if makeDirectoryError := os.MkdirAll(outputDirectory, outputDirectoryPermissions); makeDirectoryError != nil {
		return fmt.Errorf(errorCreateDirectoryFormat, outputDirectory, makeDirectoryError)
	}
	if writeError := os.WriteFile(outputPath, []byte(document), outputFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}
	return nil
}
