// Package logging assembles structured slog loggers and formatting helpers used
// across keepaudio.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so hook code can automatically
// tag log lines with the hook name, file path, and correlation ID. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
