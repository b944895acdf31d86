// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The renderer uses it in two places: auditioning background audio tracks
// before mixing them under a reel, and validating finished videos (stream
// layout, geometry, container duration) after encoding.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
package ffprobe
