// Package logging provides structured logging for the Scribe configuration
// console.
//
// This package wraps zap with convenience functions for the logging patterns
// used throughout the console. Logging is silent by default so CLI output
// stays clean; set SCRIBE_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (API requests, field edits, merges)
//   - Info: Normal operations (load, save, scan results)
//   - Warn: Non-fatal issues (missing sections, retries)
//   - Error: Failures (load/save errors, scan failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Configuration loaded",
//	    zap.String("printer", "192.168.1.100"),
//	    zap.Int("bytes", 2048),
//	)
//
// Secret values (WiFi passwords, MQTT passwords, API tokens) must never be
// passed to any logging function; log the field path only.
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
package logging
