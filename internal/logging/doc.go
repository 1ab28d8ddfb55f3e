// Package logging provides structured logging for propsheet.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used by the inspector engine and the CLI. Logging is silent unless a
// level is configured, so embedding hosts see no output by default.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Surface builds, property changes, group toggles
//   - Info: Validation failures, CLI lifecycle
//   - Warn: Recoverable problems (unbalanced popup calls, unreadable preferences)
//   - Error: Fatal issues (schema load failures)
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Info("Schema loaded",
//	    zap.String("path", "inspector.yaml"),
//	    zap.Int("properties", 12),
//	)
//
// # Specialized Logging
//
//	logging.LogSurfaceBuilt(instanceID, false, 12, 3)
//	logging.LogPropertyChange(instanceID, "color", "#000", true)
//	logging.LogGroupToggle(groupID, false, 4, true)
//	logging.LogValidation(instanceID, "color")
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug", "/tmp/propsheet.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The level may also come from the PROPSHEET_LOG_LEVEL environment variable.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
