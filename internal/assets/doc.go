// Package assets resolves the files a render job consumes: scene images
// and the background audio bed.
//
// Scene images are checked up front (existing, decodable) so a missing or
// corrupt asset fails the job before ffmpeg ever runs. Audio selection
// draws uniformly from a pool directory and falls back to synthesized
// silence whenever the pool is empty or the chosen track will not decode,
// so downstream code never carries a separate no-audio branch.
package assets
