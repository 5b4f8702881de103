// Package config holds the scan limits and ignore rules and loads them from configuration files.
package config

import (
	"fmt"

	"github.com/temirov/treegen/internal/utils"
)

const (
	// DefaultMaxFileSize is the byte size at which a file's content is replaced by a placeholder.
	DefaultMaxFileSize int64 = 1024 * 1024
	// DefaultMaxReadLength is the number of characters at which a file's content is replaced by a placeholder.
	DefaultMaxReadLength = 500000
	// DefaultOutputPath is the document written when no output path is given.
	DefaultOutputPath = "src/core/config/tree-object.ts"

	errorInvalidMaxFileSizeFormat   = "max file size must be positive, got %d"
	errorInvalidMaxReadLengthFormat = "max read length must be positive, got %d"
)

// DefaultIgnoredNames lists the path segments excluded from every scan.
var DefaultIgnoredNames = []string{
	utils.GitDirectoryName,
	"node_modules",
	"__pycache__",
	"build",
	"dist",
	".next",
	".env",
	".DS_Store",
	"thumbs.db",
}

// ScanConfiguration is the immutable set of rules applied by the traverser.
type ScanConfiguration struct {
	ignoredNames      map[string]struct{}
	maxFileSize       int64
	maxReadLength     int
	keepRootDirectory bool
}

// ScanOption adjusts a ScanConfiguration under construction.
type ScanOption func(*ScanConfiguration)

// WithAdditionalIgnoredNames extends the default ignore set.
func WithAdditionalIgnoredNames(names []string) ScanOption {
	return func(configuration *ScanConfiguration) {
		for _, name := range utils.DeduplicatePatterns(names) {
			configuration.ignoredNames[name] = struct{}{}
		}
	}
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(maxFileSize int64) ScanOption {
	return func(configuration *ScanConfiguration) {
		configuration.maxFileSize = maxFileSize
	}
}

// WithMaxReadLength overrides DefaultMaxReadLength.
func WithMaxReadLength(maxReadLength int) ScanOption {
	return func(configuration *ScanConfiguration) {
		configuration.maxReadLength = maxReadLength
	}
}

// WithKeepRootDirectory keeps a scanned directory as the single child of the synthetic root
// instead of hoisting its children.
func WithKeepRootDirectory(keep bool) ScanOption {
	return func(configuration *ScanConfiguration) {
		configuration.keepRootDirectory = keep
	}
}

// NewScanConfiguration builds a validated ScanConfiguration from the defaults and the options.
func NewScanConfiguration(options ...ScanOption) (ScanConfiguration, error) {
	configuration := ScanConfiguration{
		ignoredNames:  make(map[string]struct{}, len(DefaultIgnoredNames)),
		maxFileSize:   DefaultMaxFileSize,
		maxReadLength: DefaultMaxReadLength,
	}
	for _, name := range DefaultIgnoredNames {
		configuration.ignoredNames[name] = struct{}{}
	}
	for _, option := range options {
		option(&configuration)
	}
	if configuration.maxFileSize <= 0 {
		return ScanConfiguration{}, fmt.Errorf(errorInvalidMaxFileSizeFormat, configuration.maxFileSize)
	}
	if configuration.maxReadLength <= 0 {
		return ScanConfiguration{}, fmt.Errorf(errorInvalidMaxReadLengthFormat, configuration.maxReadLength)
	}
	return configuration, nil
}

// DefaultScanConfiguration returns the compiled-in rules.
func DefaultScanConfiguration() ScanConfiguration {
	configuration, _ := NewScanConfiguration()
	return configuration
}

// IsIgnored reports whether any segment of path is in the ignore set.
func (configuration ScanConfiguration) IsIgnored(path string) bool {
	return utils.ShouldIgnoreByPath(path, configuration.ignoredNames)
}

// MaxFileSize returns the byte size at which content is not read.
func (configuration ScanConfiguration) MaxFileSize() int64 {
	return configuration.maxFileSize
}

// MaxReadLength returns the character cap applied when reading content.
func (configuration ScanConfiguration) MaxReadLength() int {
	return configuration.maxReadLength
}

// KeepRootDirectory reports whether a scanned directory stays wrapped under the synthetic root.
func (configuration ScanConfiguration) KeepRootDirectory() bool {
	return configuration.keepRootDirectory
}
