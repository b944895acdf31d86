package compositor

import (
	"context"

	"github.com/eerla/pybenders-sub000/internal/media/ffprobe"
)

// outputProbe is the ffprobe function used for post-encode validation.
// It is a package-level variable so tests can override it.
var outputProbe = ffprobe.Inspect

// SetProbeForTests overrides the ffprobe runner during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := outputProbe
	outputProbe = fn
	return func() {
		outputProbe = previous
	}
}
