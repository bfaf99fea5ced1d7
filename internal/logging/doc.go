// Package logging provides structured logging utilities for calscribe.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "benchmark.run")
//	logger.Info("sample scored",
//	    logging.Sample("crud/simple_lunch"),
//	    logging.Status("success"))
package logging
