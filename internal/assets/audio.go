package assets

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eerla/pybenders-sub000/internal/logging"
	"github.com/eerla/pybenders-sub000/internal/media/ffprobe"
)

// Fixed sample contract of the reel audio track. Silence is synthesized at
// these parameters and real tracks are resampled to them at encode.
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".ogg":  true,
	".aac":  true,
	".flac": true,
}

// probeAudioDuration is swappable in tests to avoid invoking ffprobe.
var probeAudioDuration = func(ctx context.Context, binary, path string) (float64, error) {
	result, err := ffprobe.Inspect(ctx, binary, path)
	if err != nil {
		return 0, err
	}
	if result.AudioStreamCount() == 0 {
		return 0, errors.New("no audio stream")
	}
	duration := result.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		return 0, errors.New("unusable duration")
	}
	return duration, nil
}

// AudioSelection describes the audio bed mixed under one reel. An empty
// SourcePath means synthesized silence.
type AudioSelection struct {
	SourcePath string
	Duration   float64
	SampleRate int
	Channels   int
	Truncated  bool
}

// Silent reports whether the selection is the synthesized fallback.
func (s AudioSelection) Silent() bool {
	return s.SourcePath == ""
}

// Selector picks background tracks from a pool directory.
type Selector struct {
	poolDir string
	binary  string
	rng     *rand.Rand
	logger  *slog.Logger
}

// SelectorOption customizes a Selector.
type SelectorOption func(*Selector)

// WithRand injects a deterministic random source.
func WithRand(rng *rand.Rand) SelectorOption {
	return func(s *Selector) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewSelector builds a selector over the pool directory. An empty pool
// directory always selects silence.
func NewSelector(poolDir, ffprobeBinary string, logger *slog.Logger, opts ...SelectorOption) *Selector {
	selector := &Selector{
		poolDir: strings.TrimSpace(poolDir),
		binary:  ffprobeBinary,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logger,
	}
	if selector.logger == nil {
		selector.logger = logging.NewNop()
	}
	for _, opt := range opts {
		opt(selector)
	}
	return selector
}

// Select returns the audio bed for a reel of the target duration. Any
// problem with the pool or the chosen track degrades to silence; selection
// never fails a render.
func (s *Selector) Select(ctx context.Context, target float64) AudioSelection {
	if target < 0 {
		target = 0
	}
	silence := AudioSelection{Duration: target, SampleRate: AudioSampleRate, Channels: AudioChannels}

	if s.poolDir == "" {
		return silence
	}
	candidates := s.eligibleTracks()
	if len(candidates) == 0 {
		s.logger.DebugContext(ctx, "audio pool empty, using silence", logging.String("audio_dir", s.poolDir))
		return silence
	}

	choice := candidates[s.rng.Intn(len(candidates))]
	duration, err := probeAudioDuration(ctx, s.binary, choice)
	if err != nil {
		s.logger.WarnContext(ctx, "audio track unreadable, using silence",
			logging.String("audio_track", filepath.Base(choice)),
			logging.Error(err))
		return silence
	}

	selection := AudioSelection{
		SourcePath: choice,
		Duration:   duration,
		SampleRate: AudioSampleRate,
		Channels:   AudioChannels,
	}
	if duration > target {
		selection.Duration = target
		selection.Truncated = true
	}
	return selection
}

func (s *Selector) eligibleTracks() []string {
	entries, err := os.ReadDir(s.poolDir)
	if err != nil {
		return nil
	}
	tracks := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if audioExtensions[ext] {
			tracks = append(tracks, filepath.Join(s.poolDir, entry.Name()))
		}
	}
	return tracks
}
