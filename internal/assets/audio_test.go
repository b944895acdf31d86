package assets

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/eerla/pybenders-sub000/internal/testsupport"
)

func stubAudioProbe(t *testing.T, fn func(path string) (float64, error)) {
	t.Helper()
	original := probeAudioDuration
	probeAudioDuration = func(_ context.Context, _ string, path string) (float64, error) {
		return fn(path)
	}
	t.Cleanup(func() { probeAudioDuration = original })
}

func TestSelectSilenceWhenPoolUnset(t *testing.T) {
	selector := NewSelector("", "ffprobe", nil)

	selection := selector.Select(context.Background(), 21.2)
	if !selection.Silent() {
		t.Fatal("expected silence when no pool is configured")
	}
	if selection.Duration != 21.2 {
		t.Fatalf("duration = %v, want 21.2", selection.Duration)
	}
	if selection.SampleRate != AudioSampleRate || selection.Channels != AudioChannels {
		t.Fatalf("unexpected silence format: %d Hz %d ch", selection.SampleRate, selection.Channels)
	}
}

func TestSelectSilenceWhenPoolEmpty(t *testing.T) {
	selector := NewSelector(t.TempDir(), "ffprobe", nil)

	selection := selector.Select(context.Background(), 10)
	if !selection.Silent() {
		t.Fatal("expected silence for an empty pool")
	}
	if selection.Truncated {
		t.Fatal("silence is never truncated")
	}
}

func TestSelectTruncatesLongTrack(t *testing.T) {
	pool := t.TempDir()
	track := filepath.Join(pool, "lofi.mp3")
	testsupport.WriteFile(t, track, 128)
	stubAudioProbe(t, func(string) (float64, error) { return 95.0, nil })

	selector := NewSelector(pool, "ffprobe", nil, WithRand(rand.New(rand.NewSource(1))))

	selection := selector.Select(context.Background(), 21.2)
	if selection.Silent() {
		t.Fatal("expected a pool track, got silence")
	}
	if selection.SourcePath != track {
		t.Fatalf("source = %q, want %q", selection.SourcePath, track)
	}
	if selection.Duration != 21.2 {
		t.Fatalf("duration = %v, want 21.2", selection.Duration)
	}
	if !selection.Truncated {
		t.Fatal("a 95s track against a 21.2s target should be truncated")
	}
}

func TestSelectKeepsShortTrackLength(t *testing.T) {
	pool := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(pool, "stinger.wav"), 128)
	stubAudioProbe(t, func(string) (float64, error) { return 9.5, nil })

	selector := NewSelector(pool, "ffprobe", nil, WithRand(rand.New(rand.NewSource(1))))

	selection := selector.Select(context.Background(), 21.2)
	if selection.Silent() {
		t.Fatal("expected a pool track, got silence")
	}
	if selection.Duration != 9.5 {
		t.Fatalf("duration = %v, want the track length 9.5", selection.Duration)
	}
	if selection.Truncated {
		t.Fatal("short tracks are kept whole, not truncated")
	}
}

func TestSelectFallsBackWhenProbeFails(t *testing.T) {
	pool := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(pool, "damaged.mp3"), 128)
	stubAudioProbe(t, func(string) (float64, error) {
		return 0, errors.New("corrupt header")
	})

	selector := NewSelector(pool, "ffprobe", nil, WithRand(rand.New(rand.NewSource(1))))

	selection := selector.Select(context.Background(), 12)
	if !selection.Silent() {
		t.Fatal("expected silence after a probe failure")
	}
	if selection.Duration != 12 {
		t.Fatalf("duration = %v, want the 12s target", selection.Duration)
	}
}

func TestSelectIgnoresNonAudioFiles(t *testing.T) {
	pool := t.TempDir()
	track := filepath.Join(pool, "beat.ogg")
	testsupport.WriteFile(t, track, 128)
	testsupport.WriteFile(t, filepath.Join(pool, "README.txt"), 16)
	testsupport.WriteFile(t, filepath.Join(pool, "cover.png"), 16)
	if err := os.Mkdir(filepath.Join(pool, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	stubAudioProbe(t, func(string) (float64, error) { return 30, nil })

	selector := NewSelector(pool, "ffprobe", nil, WithRand(rand.New(rand.NewSource(7))))

	for i := 0; i < 8; i++ {
		selection := selector.Select(context.Background(), 5)
		if selection.SourcePath != track {
			t.Fatalf("picked %q, want the only eligible track %q", selection.SourcePath, track)
		}
	}
}

func TestSelectZeroTarget(t *testing.T) {
	selector := NewSelector("", "ffprobe", nil)

	selection := selector.Select(context.Background(), -3)
	if !selection.Silent() || selection.Duration != 0 {
		t.Fatalf("negative targets clamp to zero silence, got %+v", selection)
	}
}
