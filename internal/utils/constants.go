package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat reports that the logger could not be built.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"

// LocalConfigFileName is the name of the optional configuration file looked up in the working directory.
const LocalConfigFileName = ".treegen.yaml"

// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
const GlobalConfigDirectoryName = ".treegen"

// ConfigFileName is the name of the global configuration file.
const ConfigFileName = "config.yaml"
