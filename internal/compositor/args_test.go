package compositor

import (
	"strings"
	"testing"

	"github.com/eerla/pybenders-sub000/internal/assets"
	"github.com/eerla/pybenders-sub000/internal/timeline"
)

func mustTimeline(t *testing.T, scenes []timeline.Scene) timeline.Timeline {
	t.Helper()
	tl, err := timeline.Build(scenes)
	if err != nil {
		t.Fatalf("build timeline: %v", err)
	}
	return tl
}

func silence(duration float64) assets.AudioSelection {
	return assets.AudioSelection{
		Duration:   duration,
		SampleRate: assets.AudioSampleRate,
		Channels:   assets.AudioChannels,
	}
}

func TestBuildFilterScriptCrossfades(t *testing.T) {
	tl := mustTimeline(t, []timeline.Scene{
		{Index: 0, Role: "welcome", ImagePath: "/a/welcome.png", Duration: 2.0, FadeOut: 0.4},
		{Index: 1, Role: "question", ImagePath: "/a/question.png", Duration: 7.0, FadeIn: 0.4, FadeOut: 0.4},
		{Index: 2, Role: "cta", ImagePath: "/a/cta.png", Duration: 2.0, FadeIn: 0.4},
	})

	script := buildFilterScript(tl, silence(tl.TotalDuration), 0.35)
	statements := strings.Split(strings.TrimSuffix(script, "\n"), ";\n")
	if len(statements) != 6 {
		t.Fatalf("statements = %d, want 6:\n%s", len(statements), script)
	}

	if !strings.Contains(statements[0], "[0:v]scale=1080:1920:force_original_aspect_ratio=decrease") {
		t.Fatalf("first statement should normalize input 0: %s", statements[0])
	}
	if !strings.Contains(statements[0], "pad=1080:1920:(ow-iw)/2:(oh-ih)/2:color=0x090C18") {
		t.Fatalf("normalization should pad onto the brand background: %s", statements[0])
	}
	if !strings.Contains(statements[0], "fps=30,format=yuv420p[v0]") {
		t.Fatalf("normalization should pin rate and pixel format: %s", statements[0])
	}

	if got, want := statements[3], "[v0][v1]xfade=transition=fade:duration=0.400:offset=1.600[x1]"; got != want {
		t.Fatalf("first transition = %q, want %q", got, want)
	}
	if got, want := statements[4], "[x1][v2]xfade=transition=fade:duration=0.400:offset=8.200[x2]"; got != want {
		t.Fatalf("second transition = %q, want %q", got, want)
	}
	if got, want := statements[5], "[3:a]anull[aout]"; got != want {
		t.Fatalf("audio statement = %q, want %q", got, want)
	}
}

func TestBuildFilterScriptHardCuts(t *testing.T) {
	tl := mustTimeline(t, []timeline.Scene{
		{Index: 0, Role: "countdown_base", ImagePath: "/a/transition_base.png", Duration: 1.4},
		{Index: 1, Role: "countdown_2", ImagePath: "/a/transition_2.png", Duration: 1.4},
	})

	script := buildFilterScript(tl, silence(tl.TotalDuration), 0.35)
	if !strings.Contains(script, "[v0][v1]concat=n=2:v=1:a=0[x1]") {
		t.Fatalf("zero overlap should concat, not crossfade:\n%s", script)
	}
	if strings.Contains(script, "xfade") {
		t.Fatalf("hard cuts must not emit xfade:\n%s", script)
	}
}

func TestBuildFilterScriptAudioTrack(t *testing.T) {
	tl := mustTimeline(t, []timeline.Scene{
		{Index: 0, Role: "welcome", ImagePath: "/a/welcome.png", Duration: 5},
	})
	audio := assets.AudioSelection{
		SourcePath: "/pool/lofi.mp3",
		Duration:   5,
		SampleRate: assets.AudioSampleRate,
		Channels:   assets.AudioChannels,
	}

	script := buildFilterScript(tl, audio, 0.35)
	if !strings.Contains(script, "[1:a]atrim=0:5.000,asetpts=PTS-STARTPTS,volume=0.35[aout]") {
		t.Fatalf("pool track should be trimmed and attenuated:\n%s", script)
	}
}

func TestBuildEncodeArgs(t *testing.T) {
	tl := mustTimeline(t, []timeline.Scene{
		{Index: 0, Role: "welcome", ImagePath: "/a/welcome.png", Duration: 3.5},
	})

	args := buildEncodeArgs(tl, silence(tl.TotalDuration), "/work/filters.txt", "/out/.q1.mp4.partial", encodeSettings{
		preset: "medium",
		crf:    20,
		volume: 0.35,
	})

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-hide_banner -loglevel error -nostats -progress pipe:1 -y",
		"-loop 1 -t 3.500 -i /a/welcome.png",
		"-f lavfi -t 3.500 -i anullsrc=channel_layout=stereo:sample_rate=44100",
		"-filter_complex_script /work/filters.txt",
		"-map [v0] -map [aout]",
		"-c:v libx264 -preset medium -crf 20 -r 30 -pix_fmt yuv420p",
		"-c:a aac -b:a 192k -ar 44100 -ac 2",
		"-movflags +faststart",
		"-t 3.500 -f mp4 /out/.q1.mp4.partial",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q:\n%s", want, joined)
		}
	}
	if args[len(args)-1] != "/out/.q1.mp4.partial" {
		t.Fatalf("output path must come last, got %q", args[len(args)-1])
	}
}

func TestBuildEncodeArgsAudioFile(t *testing.T) {
	tl := mustTimeline(t, []timeline.Scene{
		{Index: 0, Role: "welcome", ImagePath: "/a/welcome.png", Duration: 4},
		{Index: 1, Role: "cta", ImagePath: "/a/cta.png", Duration: 2},
	})
	audio := assets.AudioSelection{SourcePath: "/pool/track.mp3", Duration: 6}

	args := buildEncodeArgs(tl, audio, "/work/filters.txt", "/out/.q.mp4.partial", encodeSettings{preset: "fast", crf: 22, volume: 0.35})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-i /pool/track.mp3") {
		t.Fatalf("pool track input missing:\n%s", joined)
	}
	if strings.Contains(joined, "anullsrc") {
		t.Fatalf("file-backed audio must not add a silence source:\n%s", joined)
	}
	if !strings.Contains(joined, "-map [x1]") {
		t.Fatalf("two scenes should map the chained label:\n%s", joined)
	}
}

func TestVideoOutputLabel(t *testing.T) {
	if got := videoOutputLabel(1); got != "v0" {
		t.Fatalf("single scene label = %q, want v0", got)
	}
	if got := videoOutputLabel(8); got != "x7" {
		t.Fatalf("eight scene label = %q, want x7", got)
	}
}
