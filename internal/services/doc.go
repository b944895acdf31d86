// Package services defines shared utilities consumed by the render pipeline
// and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run, subject, and question identifiers for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     into consistent kinds (configuration, asset_missing, encode, timeout).
//   - Thin abstractions that make command execution and progress streaming
//     from external tools testable.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, reporting) stays uniform across the
// renderer.
package services
