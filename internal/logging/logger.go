package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "PROPSHEET_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks PROPSHEET_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
//
// Output goes to stderr unless outputPath names a file. The interactive editor
// always passes a file so log lines never tear the terminal UI.
func Initialize(level string, outputPath string) error {
	// If no level provided, check environment variable
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	output := "stderr"
	if outputPath != "" {
		output = outputPath
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	// Customize encoder for better readability
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if outputPath != "" {
		// No ANSI colors in log files
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the PROPSHEET_LOG_LEVEL
// environment variable. This is the recommended way to initialize logging
// for CLI commands that want silent mode by default.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// SetLogger replaces the global logger. Passing nil restores silent mode.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		// This ensures no unexpected log output in CLI commands
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogSurfaceBuilt logs the completion of a surface build
func LogSurfaceBuilt(instanceID string, nested bool, properties int, groups int) {
	Debug("Surface built",
		zap.String("instance_id", instanceID),
		zap.Bool("nested", nested),
		zap.Int("properties", properties),
		zap.Int("groups", groups),
	)
}

// LogPropertyChange logs a property value change
func LogPropertyChange(instanceID string, property string, value any, changed bool) {
	Debug("Property changed",
		zap.String("instance_id", instanceID),
		zap.String("property", property),
		zap.String("value", valueSummary(value)),
		zap.Bool("differs_from_original", changed),
	)
}

// LogGroupToggle logs a group expand/collapse transition
func LogGroupToggle(groupID string, expanded bool, rows int, animated bool) {
	Debug("Group toggled",
		zap.String("group_id", groupID),
		zap.Bool("expanded", expanded),
		zap.Int("rows", rows),
		zap.Bool("animated", animated),
	)
}

// LogValidation logs the outcome of a surface validation
func LogValidation(instanceID string, invalidProperty string) {
	if invalidProperty == "" {
		Debug("Validation passed", zap.String("instance_id", instanceID))
		return
	}
	Info("Validation failed",
		zap.String("instance_id", instanceID),
		zap.String("property", invalidProperty),
	)
}

// Helper functions

func valueSummary(value any) string {
	if value == nil {
		return "<unset>"
	}
	s := fmt.Sprintf("%v", value)
	// Limit to first 64 characters for logging
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
