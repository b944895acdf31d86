// Package ffmpeg runs the ffmpeg binary for reel encodes and observes its
// machine-readable progress stream.
//
// It exposes a Client interface, a CLI implementation that executes a
// prepared argument list, and typed ProgressUpdate values parsed from
// "-progress pipe:1" key=value output. Tests can swap in fakes to avoid
// executing the real encoder while still exercising render behaviour.
package ffmpeg
