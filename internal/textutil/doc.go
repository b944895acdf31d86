// Package textutil provides small text helpers shared across the CLI and
// the batch scheduler.
//
// The primary use cases are:
//   - Sanitizing manifest-supplied identifiers for safe filesystem use
//   - Turning subject slugs into human-readable display names
package textutil
