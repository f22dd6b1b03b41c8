// Package logger provides a structured logging facility based on Zap.
//
// The CLI commands and the HTTP server share one constructor so that a batch
// build and a request-triggered build log with the same keys.
//
// # Request Correlation
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber context
// and attaches it to the log entry.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Tables loaded", zap.Int("count", len(tables)))
package logger
