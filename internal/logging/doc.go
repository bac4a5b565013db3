// Package logging assembles structured slog loggers and formatting helpers used
// across folio commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so batch code can tag every log line
// with the run ID, batch kind, and file being processed. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
