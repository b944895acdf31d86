package compositor

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/eerla/pybenders-sub000/internal/services"
)

const (
	// minOutputSizeBytes catches truncated or empty artifacts without
	// tripping on very static reels, which x264 compresses aggressively.
	minOutputSizeBytes = 64 * 1024
	// durationTolerance absorbs AAC priming samples and container
	// rounding against the timeline total.
	durationTolerance = 0.5
)

// validateOutput probes the encoded artifact before it is published. A reel
// must carry exactly one video and one audio stream and run the timeline's
// total length.
func validateOutput(ctx context.Context, probeBinary, path string, wantSeconds float64) error {
	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrEncode, "compositor", "validate", "encoded artifact missing", err)
	}
	if info.Size() < minOutputSizeBytes {
		return services.Wrap(services.ErrEncode, "compositor", "validate",
			fmt.Sprintf("encoded artifact suspiciously small (%d bytes)", info.Size()), nil)
	}

	result, err := outputProbe(ctx, probeBinary, path)
	if err != nil {
		return services.Wrap(services.ErrEncode, "compositor", "validate", "probe encoded artifact", err)
	}
	if got := result.VideoStreamCount(); got != 1 {
		return services.Wrap(services.ErrEncode, "compositor", "validate",
			fmt.Sprintf("expected one video stream, found %d", got), nil)
	}
	if got := result.AudioStreamCount(); got != 1 {
		return services.Wrap(services.ErrEncode, "compositor", "validate",
			fmt.Sprintf("expected one audio stream, found %d", got), nil)
	}

	duration := result.DurationSeconds()
	if math.IsNaN(duration) {
		return services.Wrap(services.ErrEncode, "compositor", "validate", "container reports no duration", nil)
	}
	if math.Abs(duration-wantSeconds) > durationTolerance {
		return services.Wrap(services.ErrEncode, "compositor", "validate",
			fmt.Sprintf("container duration %.2fs deviates from timeline total %.2fs", duration, wantSeconds), nil)
	}
	return nil
}
