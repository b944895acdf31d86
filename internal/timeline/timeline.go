// Package timeline computes absolute scene placement for a reel.
//
// Build is a pure function over ordered scenes: consecutive scenes share a
// crossfade window of min(fadeOut, fadeIn) seconds, so each scene starts
// before its predecessor ends and the reel runs shorter than the plain sum
// of scene durations. A zero fade on either side of a boundary collapses
// the window to a hard cut.
package timeline

import (
	"fmt"

	"github.com/eerla/pybenders-sub000/internal/services"
)

// Scene is one static image shown for a contiguous interval of the reel.
type Scene struct {
	Index     int
	Role      string
	ImagePath string
	Duration  float64
	FadeIn    float64
	FadeOut   float64
}

// Placement is a scene with computed absolute offsets in seconds.
type Placement struct {
	Scene
	Start float64
	End   float64
	// OverlapNext is the crossfade window shared with the following scene,
	// zero for the final scene and for hard cuts.
	OverlapNext float64
}

// Timeline is an ordered set of placements covering [0, TotalDuration).
type Timeline struct {
	Scenes        []Placement
	TotalDuration float64
}

// Build validates the scene list and computes placements. All rejections
// are configuration errors: they describe an invalid recipe, not a runtime
// failure.
func Build(scenes []Scene) (Timeline, error) {
	if len(scenes) == 0 {
		return Timeline{}, services.Wrap(services.ErrConfiguration, "timeline", "build", "no scenes", nil)
	}
	for i, scene := range scenes {
		if scene.Duration <= 0 {
			return Timeline{}, rejectScene(i, scene, fmt.Sprintf("duration %.3fs must be positive", scene.Duration))
		}
		if scene.FadeIn < 0 || scene.FadeOut < 0 {
			return Timeline{}, rejectScene(i, scene, fmt.Sprintf("negative fade (in %.3fs, out %.3fs)", scene.FadeIn, scene.FadeOut))
		}
		if scene.FadeIn+scene.FadeOut > scene.Duration {
			return Timeline{}, rejectScene(i, scene, fmt.Sprintf("fade windows %.3fs+%.3fs exceed %.3fs span", scene.FadeIn, scene.FadeOut, scene.Duration))
		}
	}

	placements := make([]Placement, len(scenes))
	start := 0.0
	for i, scene := range scenes {
		end := start + scene.Duration
		placements[i] = Placement{Scene: scene, Start: start, End: end}
		if i+1 < len(scenes) {
			overlap := min(scene.FadeOut, scenes[i+1].FadeIn)
			placements[i].OverlapNext = overlap
			start = end - overlap
			if start < 0 {
				return Timeline{}, rejectScene(i+1, scenes[i+1], fmt.Sprintf("computed start offset %.3fs is negative", start))
			}
		}
	}

	return Timeline{
		Scenes:        placements,
		TotalDuration: placements[len(placements)-1].End,
	}, nil
}

func rejectScene(index int, scene Scene, message string) error {
	label := fmt.Sprintf("scene %d", index)
	if scene.Role != "" {
		label = fmt.Sprintf("scene %d (%s)", index, scene.Role)
	}
	return services.Wrap(services.ErrConfiguration, "timeline", "build", label+": "+message, nil)
}
