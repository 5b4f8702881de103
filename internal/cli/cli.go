// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/treegen/internal/config"
	"github.com/temirov/treegen/internal/services/clipboard"
	"github.com/temirov/treegen/internal/services/generate"
	"github.com/temirov/treegen/internal/tokenizer"
	"github.com/temirov/treegen/internal/utils"
)

const (
	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	configFlagName        = "config"
	maxFileSizeFlagName   = "max-file-size"
	maxReadLengthFlagName = "max-read-length"
	ignoreFlagName        = "ignore"
	keepRootFlagName      = "keep-root"
	previewFlagName       = "preview"
	copyFlagName          = "copy"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	versionFlagName       = "version"
	versionTemplate       = "treegen version: %s\n"
	rootUse               = "treegen <directory>"
	rootShortDescription  = "generate a typed file explorer tree from a directory"
	rootLongDescription   = `treegen walks a directory and writes a TypeScript module exporting its structure
and file contents as a FileExplorer tree for front-end builds.
Version control, dependency and build directories are skipped. Files of 1 MiB or more
and files of 500000 characters or more are replaced by placeholders.`
	rootUsageExample = `  # Generate the default src/core/config/tree-object.ts
  treegen ./templates/starter

  # Write to a custom location and print an outline of the result
  treegen ./templates/starter -o web/tree.ts --preview

  # Skip an additional directory name and lower the size limit
  treegen . --ignore coverage --max-file-size 65536`

	outputFlagDescription        = "output file"
	configFlagDescription        = "configuration file (default " + utils.LocalConfigFileName + " in the working directory)"
	maxFileSizeFlagDescription   = "byte size at which file content is replaced by a placeholder"
	maxReadLengthFlagDescription = "character count at which file content is replaced by a placeholder"
	ignoreFlagDescription        = "additional path segment to skip"
	keepRootFlagDescription      = "keep the scanned directory as the single child of project-root"
	previewFlagDescription       = "print an outline of the generated tree"
	copyFlagDescription          = "copy the generated document to the clipboard"
	tokensFlagDescription        = "report the token count of the generated document"
	modelFlagDescription         = "tokenizer model to use for token counting"
	versionFlagDescription       = "display application version"

	successMessageFormat  = "Successfully generated IDE structure in %s\n"
	tokenReportFormat     = "Tokens (%s): %d\n"
	errorMissingDirectory = "requires a directory argument"
)

// generateOptions stores the flag values of the root command.
type generateOptions struct {
	outputPath    string
	configPath    string
	maxFileSize   int64
	maxReadLength int
	ignoredNames  []string
	keepRoot      bool
	preview       bool
	copy          bool
	tokens        bool
	model         string
}

// Execute runs the treegen application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(logger, clipboard.NewService())
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command. The copier is used when copying is requested.
func NewRootCommand(logger *zap.Logger, copier clipboard.Copier) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	var showVersion bool
	options := generateOptions{
		outputPath:    config.DefaultOutputPath,
		maxFileSize:   config.DefaultMaxFileSize,
		maxReadLength: config.DefaultMaxReadLength,
		model:         tokenizer.DefaultModel,
	}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			if len(arguments) == 0 {
				return errors.New(errorMissingDirectory)
			}
			return runGenerate(command, logger, copier, arguments[0], options)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, config.DefaultOutputPath, outputFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flags.Int64Var(&options.maxFileSize, maxFileSizeFlagName, config.DefaultMaxFileSize, maxFileSizeFlagDescription)
	flags.IntVar(&options.maxReadLength, maxReadLengthFlagName, config.DefaultMaxReadLength, maxReadLengthFlagDescription)
	flags.StringArrayVar(&options.ignoredNames, ignoreFlagName, nil, ignoreFlagDescription)
	flags.BoolVar(&options.keepRoot, keepRootFlagName, false, keepRootFlagDescription)
	flags.BoolVar(&options.preview, previewFlagName, false, previewFlagDescription)
	flags.BoolVar(&options.copy, copyFlagName, false, copyFlagDescription)
	flags.BoolVar(&options.tokens, tokensFlagName, false, tokensFlagDescription)
	flags.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flags.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// runGenerate resolves configuration, runs the generator and reports the result.
func runGenerate(command *cobra.Command, logger *zap.Logger, copier clipboard.Copier, rootPath string, options generateOptions) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf("unable to determine working directory: %w", workingDirectoryError)
	}
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return loadError
	}
	generator := applyFlagOverrides(command, applicationConfiguration.Generator, options)

	scanConfiguration, configurationError := config.NewScanConfiguration(generator.ScanOptions()...)
	if configurationError != nil {
		return configurationError
	}

	runOptions := generate.Options{
		RootPath:      rootPath,
		OutputPath:    generator.Output,
		Configuration: scanConfiguration,
		Preview:       config.BoolValue(generator.Preview, false),
	}
	if config.BoolValue(generator.Copy, false) {
		runOptions.Copier = copier
	}
	var tokenModel string
	if config.BoolValue(generator.Tokens.Enabled, false) {
		counter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: generator.Tokens.Model})
		if counterError != nil {
			return counterError
		}
		runOptions.TokenCounter = counter
		tokenModel = resolvedModel
	}

	result, generateError := generate.NewService(logger).Generate(runOptions)
	if generateError != nil {
		return generateError
	}

	outputWriter := command.OutOrStdout()
	if result.Preview != "" {
		fmt.Fprint(outputWriter, result.Preview)
	}
	if runOptions.TokenCounter != nil {
		fmt.Fprintf(outputWriter, tokenReportFormat, tokenModel, result.Tokens)
	}
	fmt.Fprintf(outputWriter, successMessageFormat, result.OutputPath)
	return nil
}

// applyFlagOverrides layers explicitly set flags over the file configuration and fills
// remaining gaps with the flag defaults.
func applyFlagOverrides(command *cobra.Command, generator config.GeneratorConfiguration, options generateOptions) config.GeneratorConfiguration {
	flags := command.Flags()
	if flags.Changed(outputFlagName) || generator.Output == "" {
		generator.Output = options.outputPath
	}
	if flags.Changed(maxFileSizeFlagName) {
		maxFileSize := options.maxFileSize
		generator.MaxFileSize = &maxFileSize
	}
	if flags.Changed(maxReadLengthFlagName) {
		maxReadLength := options.maxReadLength
		generator.MaxReadLength = &maxReadLength
	}
	if flags.Changed(ignoreFlagName) {
		generator.Ignore = utils.DeduplicatePatterns(append(append([]string{}, generator.Ignore...), options.ignoredNames...))
	}
	if flags.Changed(keepRootFlagName) {
		keepRoot := options.keepRoot
		generator.KeepRoot = &keepRoot
	}
	if flags.Changed(previewFlagName) {
		preview := options.preview
		generator.Preview = &preview
	}
	if flags.Changed(copyFlagName) {
		copyEnabled := options.copy
		generator.Copy = &copyEnabled
	}
	if flags.Changed(tokensFlagName) {
		tokensEnabled := options.tokens
		generator.Tokens.Enabled = &tokensEnabled
	}
	if flags.Changed(modelFlagName) || generator.Tokens.Model == "" {
		generator.Tokens.Model = options.model
	}
	return generator
}
