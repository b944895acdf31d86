// Package compositor materializes one timeline plus an audio selection
// into a finished reel through an injected ffmpeg client.
//
// A render owns every native resource it touches for exactly one job:
// the working directory, the filter script, the partial output, and the
// spawned encoder all register with a cleanup registry that is closed on
// every exit path. Output placement is atomic: the encoder writes a
// hidden partial in the destination directory and a rename publishes it
// only after the artifact passes probe validation, so a corrupt file is
// never visible at the final path.
package compositor
