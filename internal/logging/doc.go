// Package logging assembles structured slog loggers and formatting helpers
// used across the caption pipeline.
//
// It centralizes level and output plumbing, exposes context-aware helpers so
// client code can automatically tag log lines with correlation IDs, and
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup to ensure new
// components emit data with the same shape as the rest of the system.
package logging
