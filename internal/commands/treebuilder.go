package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/treegen/internal/config"
	"github.com/temirov/treegen/internal/encoder"
)

// ContentEncoder produces the embeddable content of a file.
type ContentEncoder interface {
	Encode(path string) encoder.Content
}

// TreeBuilder builds file explorer nodes using configured options.
type TreeBuilder struct {
	configuration config.ScanConfiguration
	encoder       ContentEncoder
	logger        *zap.Logger
}

// NewTreeBuilder returns a TreeBuilder that reads content with an Encoder sized by configuration.
// A nil logger discards diagnostics.
func NewTreeBuilder(configuration config.ScanConfiguration, logger *zap.Logger) *TreeBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeBuilder{
		configuration: configuration,
		encoder:       encoder.NewEncoder(configuration.MaxReadLength(), logger),
		logger:        logger,
	}
}

// WithEncoder returns a copy of the builder using contentEncoder for file content.
func (treeBuilder *TreeBuilder) WithEncoder(contentEncoder ContentEncoder) *TreeBuilder {
	clone := *treeBuilder
	clone.encoder = contentEncoder
	return &clone
}
