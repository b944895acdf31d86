package catalog

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/eerla/pybenders-sub000/internal/services"
	"github.com/eerla/pybenders-sub000/internal/timeline"
)

const countdownRole = "countdown"

const spanTolerance = 1e-9

// countdownBeat is one fixed sub-scene of the countdown sequence. The
// upstream image provider writes the sibling images next to the base image
// under these exact names.
type countdownBeat struct {
	role  string
	image string
	span  float64
}

var countdownBeats = []countdownBeat{
	{role: "countdown_base", image: "transition_base.png", span: 1.4},
	{role: "countdown_2", image: "transition_2.png", span: 1.4},
	{role: "countdown_1", image: "transition_1.png", span: 1.4},
	{role: "countdown_ready", image: "transition_ready.png", span: 0.6},
}

// CountdownSpan returns the opaque span the countdown slot occupies in the
// outer timeline. The beats sum to it exactly with zero internal overlap,
// so expanding the slot never changes outer offsets.
func CountdownSpan() float64 {
	total := 0.0
	for _, beat := range countdownBeats {
		total += beat.span
	}
	return total
}

// SceneInput is one manifest entry: the provider's intent for a slot.
type SceneInput struct {
	Role      string
	ImagePath string
	Duration  float64
}

// ExpandScenes checks the manifest entries against the profile and builds
// the concrete scene list. Roles must match the profile slot-for-slot;
// durations come from the manifest, fades from the catalog. Countdown slots
// expand into their fixed hard-cut beats, with the outer fade-in riding on
// the first beat and the outer fade-out on the last.
func ExpandScenes(profile Profile, inputs []SceneInput) ([]timeline.Scene, error) {
	if len(inputs) != len(profile.Slots) {
		return nil, invalidScenes(profile, fmt.Sprintf("expects %d scenes, manifest has %d", len(profile.Slots), len(inputs)))
	}

	scenes := make([]timeline.Scene, 0, len(inputs)+len(countdownBeats))
	for i, slot := range profile.Slots {
		input := inputs[i]
		if input.Role != slot.Role {
			return nil, invalidScenes(profile, fmt.Sprintf("scene %d role %q does not match slot %q", i, input.Role, slot.Role))
		}
		if input.ImagePath == "" {
			return nil, invalidScenes(profile, fmt.Sprintf("scene %d (%s) has no image path", i, slot.Role))
		}
		if input.Duration <= 0 {
			return nil, invalidScenes(profile, fmt.Sprintf("scene %d (%s) duration %.3fs must be positive", i, slot.Role, input.Duration))
		}

		if slot.Role == countdownRole {
			if !sameSpan(input.Duration, CountdownSpan()) {
				return nil, invalidScenes(profile, fmt.Sprintf("countdown span must be %.3fs, manifest has %.3fs", CountdownSpan(), input.Duration))
			}
			scenes = append(scenes, expandCountdown(slot, input, len(scenes))...)
			continue
		}

		scenes = append(scenes, timeline.Scene{
			Index:     len(scenes),
			Role:      slot.Role,
			ImagePath: input.ImagePath,
			Duration:  input.Duration,
			FadeIn:    slot.FadeIn,
			FadeOut:   slot.FadeOut,
		})
	}
	return scenes, nil
}

func expandCountdown(slot Slot, input SceneInput, nextIndex int) []timeline.Scene {
	dir := filepath.Dir(input.ImagePath)
	scenes := make([]timeline.Scene, 0, len(countdownBeats))
	for i, beat := range countdownBeats {
		scene := timeline.Scene{
			Index:     nextIndex + i,
			Role:      beat.role,
			ImagePath: filepath.Join(dir, beat.image),
			Duration:  beat.span,
		}
		if i == 0 {
			scene.FadeIn = slot.FadeIn
		}
		if i == len(countdownBeats)-1 {
			scene.FadeOut = slot.FadeOut
		}
		scenes = append(scenes, scene)
	}
	return scenes
}

func sameSpan(a, b float64) bool {
	return math.Abs(a-b) < spanTolerance
}

func invalidScenes(profile Profile, message string) error {
	return services.Wrap(services.ErrConfiguration, "catalog", "expand", fmt.Sprintf("profile %q: %s", profile.Name, message), nil)
}
