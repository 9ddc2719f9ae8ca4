// Package services defines shared utilities consumed by the workflow hooks and
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp hook names, file paths, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can decide
//     whether a failure is reported to the user or silently skipped.
//
// Use these helpers when wiring new hook logic so operational behaviour (error
// handling, observability) stays uniform across the pipeline.
package services
