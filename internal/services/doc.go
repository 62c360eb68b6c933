// Package services defines shared utilities consumed by the media platform
// clients and the caption loader.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure kinds
//     distinguishable with errors.Is all the way up to callers.
//   - Context helpers that stamp correlation identifiers for logging and
//     server-side request tracing.
//
// Use these helpers when wiring new client logic so operational behaviour
// (error handling, observability, retries) stays uniform across the pipeline.
package services
