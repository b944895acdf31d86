package compositor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eerla/pybenders-sub000/internal/assets"
	"github.com/eerla/pybenders-sub000/internal/timeline"
)

// Fixed reel format. Frame geometry, rates, and codecs are part of the
// output contract and deliberately not configurable.
const (
	frameWidth      = 1080
	frameHeight     = 1920
	frameRate       = 30
	backgroundColor = "0x090C18"
	audioBitrate    = "192k"
)

type encodeSettings struct {
	preset string
	crf    int
	volume float64
}

// formatSeconds renders a time value for ffmpeg arguments. Millisecond
// precision keeps accumulated float offsets stable across platforms.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// normalizeChain is the per-input conditioning applied to every scene
// image: contain-fit onto the brand background, square pixels, and the
// fixed frame rate and pixel format xfade requires on both sides.
func normalizeChain(input int) string {
	return fmt.Sprintf(
		"[%d:v]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=%s,setsar=1,fps=%d,format=yuv420p[v%d]",
		input, frameWidth, frameHeight, frameWidth, frameHeight, backgroundColor, frameRate, input,
	)
}

// buildFilterScript emits the filter graph for the whole reel, one
// statement per line. The graph is written to a script file rather than
// passed inline so long batches never brush against argv limits.
func buildFilterScript(tl timeline.Timeline, audio assets.AudioSelection, volume float64) string {
	var statements []string

	for i := range tl.Scenes {
		statements = append(statements, normalizeChain(i))
	}

	last := "v0"
	for i := 0; i < len(tl.Scenes)-1; i++ {
		placement := tl.Scenes[i]
		next := tl.Scenes[i+1]
		label := fmt.Sprintf("x%d", i+1)
		if placement.OverlapNext > 0 {
			statements = append(statements, fmt.Sprintf(
				"[%s][v%d]xfade=transition=fade:duration=%s:offset=%s[%s]",
				last, i+1, formatSeconds(placement.OverlapNext), formatSeconds(next.Start), label,
			))
		} else {
			statements = append(statements, fmt.Sprintf(
				"[%s][v%d]concat=n=2:v=1:a=0[%s]",
				last, i+1, label,
			))
		}
		last = label
	}

	audioInput := len(tl.Scenes)
	if audio.Silent() {
		statements = append(statements, fmt.Sprintf("[%d:a]anull[aout]", audioInput))
	} else {
		statements = append(statements, fmt.Sprintf(
			"[%d:a]atrim=0:%s,asetpts=PTS-STARTPTS,volume=%s[aout]",
			audioInput, formatSeconds(audio.Duration), strconv.FormatFloat(volume, 'f', -1, 64),
		))
	}

	return strings.Join(statements, ";\n") + "\n"
}

// videoOutputLabel names the final video stream in the filter graph.
func videoOutputLabel(sceneCount int) string {
	if sceneCount == 1 {
		return "v0"
	}
	return fmt.Sprintf("x%d", sceneCount-1)
}

// buildEncodeArgs assembles the complete ffmpeg invocation. The partial
// carries no media extension, so the container format is pinned with -f.
func buildEncodeArgs(tl timeline.Timeline, audio assets.AudioSelection, scriptPath, partialPath string, settings encodeSettings) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostats",
		"-progress", "pipe:1",
		"-y",
	}

	for _, placement := range tl.Scenes {
		args = append(args,
			"-loop", "1",
			"-t", formatSeconds(placement.End-placement.Start),
			"-i", placement.ImagePath,
		)
	}

	if audio.Silent() {
		args = append(args,
			"-f", "lavfi",
			"-t", formatSeconds(tl.TotalDuration),
			"-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", assets.AudioSampleRate),
		)
	} else {
		args = append(args, "-i", audio.SourcePath)
	}

	args = append(args,
		"-filter_complex_script", scriptPath,
		"-map", "["+videoOutputLabel(len(tl.Scenes))+"]",
		"-map", "[aout]",
		"-c:v", "libx264",
		"-preset", settings.preset,
		"-crf", strconv.Itoa(settings.crf),
		"-r", strconv.Itoa(frameRate),
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", audioBitrate,
		"-ar", strconv.Itoa(assets.AudioSampleRate),
		"-ac", strconv.Itoa(assets.AudioChannels),
		"-movflags", "+faststart",
		"-t", formatSeconds(tl.TotalDuration),
		"-f", "mp4",
		partialPath,
	)

	return args
}
