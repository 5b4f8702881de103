package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvironmentVariable selects the minimum level of diagnostics written to stderr.
const LogLevelEnvironmentVariable = "TREEGEN_LOG_LEVEL"

// NewApplicationLogger constructs a zap logger configured for human-readable console output on stderr.
// The level defaults to info and can be lowered to debug through LogLevelEnvironmentVariable.
func NewApplicationLogger() (*zap.Logger, error) {
	level, levelError := resolveLogLevel(os.Getenv(LogLevelEnvironmentVariable))
	if levelError != nil {
		return nil, levelError
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.Sampling = nil
	config.OutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	return config.Build()
}

func resolveLogLevel(value string) (zapcore.Level, error) {
	trimmedValue := strings.TrimSpace(value)
	if trimmedValue == EmptyString {
		return zapcore.InfoLevel, nil
	}
	level, parseError := zapcore.ParseLevel(trimmedValue)
	if parseError != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid %s value %q: %w", LogLevelEnvironmentVariable, trimmedValue, parseError)
	}
	return level, nil
}
