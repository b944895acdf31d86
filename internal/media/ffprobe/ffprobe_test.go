package ffprobe

import (
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", CodecName: "h264", Width: 1080, Height: 1920},
			{CodecType: "audio", CodecName: "aac", SampleRate: "44100", Channels: 2},
		},
		Format: Format{
			Duration: "21.2",
			Size:     "2048000",
			BitRate:  "772830",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 21.2 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 2048000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if result.BitRate() != 772830 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}

	video, ok := result.FirstVideoStream()
	if !ok {
		t.Fatal("expected a video stream")
	}
	if video.Width != 1080 || video.Height != 1920 {
		t.Fatalf("unexpected geometry: %dx%d", video.Width, video.Height)
	}
	audio, ok := result.FirstAudioStream()
	if !ok {
		t.Fatal("expected an audio stream")
	}
	if audio.SampleRateHz() != 44100 {
		t.Fatalf("unexpected sample rate: %d", audio.SampleRateHz())
	}
	if audio.Channels != 2 {
		t.Fatalf("unexpected channels: %d", audio.Channels)
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
	if _, ok := result.FirstVideoStream(); ok {
		t.Fatal("expected no video stream")
	}
	if _, ok := result.FirstAudioStream(); ok {
		t.Fatal("expected no audio stream")
	}
}

func TestStreamFrameRate(t *testing.T) {
	cases := []struct {
		name string
		avg  string
		r    string
		want float64
	}{
		{name: "integer ratio", avg: "30/1", want: 30},
		{name: "ntsc ratio", avg: "30000/1001", want: 30000.0 / 1001.0},
		{name: "plain number", avg: "25", want: 25},
		{name: "falls back to r_frame_rate", avg: "0/0", r: "30/1", want: 30},
		{name: "zero denominator", avg: "30/0", want: 0},
		{name: "empty", avg: "", want: 0},
		{name: "garbage", avg: "many/few", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stream := Stream{AvgFrameRate: tc.avg, RFrameRate: tc.r}
			if got := stream.FrameRate(); got != tc.want {
				t.Fatalf("FrameRate() = %v, want %v", got, tc.want)
			}
		})
	}
}
