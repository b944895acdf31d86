package compositor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eerla/pybenders-sub000/internal/assets"
	"github.com/eerla/pybenders-sub000/internal/config"
	"github.com/eerla/pybenders-sub000/internal/logging"
	"github.com/eerla/pybenders-sub000/internal/native"
	"github.com/eerla/pybenders-sub000/internal/services"
	"github.com/eerla/pybenders-sub000/internal/services/ffmpeg"
	"github.com/eerla/pybenders-sub000/internal/timeline"
)

const filterScriptName = "filters.txt"

// Request carries everything one render needs. The caller decides where
// the reel lands and where the job may scribble; the compositor owns both
// locations for the duration of the render.
type Request struct {
	QuestionID string
	Timeline   timeline.Timeline
	Audio      assets.AudioSelection
	OutputPath string
	// WorkDir is the job-private scratch directory. It is created on
	// demand and removed at job end unless KeepWorkDir is set.
	WorkDir     string
	KeepWorkDir bool
	// LogPath, when set, receives the encoder transcript. It lives outside
	// WorkDir so failed encodes stay diagnosable after cleanup.
	LogPath string
	// Cleanup, when set, collects this job's native resources; otherwise a
	// private registry is used. Either way Render closes it before
	// returning.
	Cleanup    *native.Registry
	OnProgress func(ffmpeg.ProgressUpdate)
}

// Compositor renders reels through an ffmpeg client.
type Compositor struct {
	client      ffmpeg.Client
	logger      *slog.Logger
	probeBinary string
	settings    encodeSettings
}

// New constructs a compositor bound to the configured encoder tuning.
func New(client ffmpeg.Client, cfg *config.Config, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Compositor{
		client:      client,
		logger:      logger,
		probeBinary: cfg.FFprobeBinary(),
		settings: encodeSettings{
			preset: cfg.Render.VideoPreset,
			crf:    cfg.Render.VideoCRF,
			volume: cfg.Render.AudioVolume,
		},
	}
}

// Render encodes one reel and publishes it at req.OutputPath. Any error
// leaves no partial output behind; the cleanup registry is closed on every
// return path.
func (c *Compositor) Render(ctx context.Context, req Request) error {
	if len(req.Timeline.Scenes) == 0 {
		return services.Wrap(services.ErrConfiguration, "compositor", "render", "timeline has no scenes", nil)
	}
	if req.OutputPath == "" || req.WorkDir == "" {
		return services.Wrap(services.ErrConfiguration, "compositor", "render", "output path and working directory are required", nil)
	}

	ctx = services.WithQuestionID(ctx, req.QuestionID)
	logger := logging.WithContext(ctx, c.logger)

	registry := req.Cleanup
	if registry == nil {
		registry = native.NewRegistry()
	}
	defer func() {
		if closeErr := registry.Close(); closeErr != nil {
			logger.Warn("render cleanup incomplete", logging.Error(closeErr))
		}
	}()

	if err := os.MkdirAll(req.WorkDir, 0o755); err != nil {
		return services.Wrap(services.ErrEncode, "compositor", "prepare", "create working directory", err)
	}
	if !req.KeepWorkDir {
		workDir := req.WorkDir
		registry.Register("working directory", func() error {
			return os.RemoveAll(workDir)
		})
	}

	scriptPath := filepath.Join(req.WorkDir, filterScriptName)
	script := buildFilterScript(req.Timeline, req.Audio, c.settings.volume)
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return services.Wrap(services.ErrEncode, "compositor", "prepare", "write filter script", err)
	}
	if !req.KeepWorkDir {
		registry.Register("filter script", func() error {
			return removeIfPresent(scriptPath)
		})
	}

	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0o755); err != nil {
		return services.Wrap(services.ErrEncode, "compositor", "prepare", "create output directory", err)
	}
	partial := partialPath(req.OutputPath)
	registry.Register("partial output", func() error {
		return removeIfPresent(partial)
	})

	encodeReq := ffmpeg.Request{
		Args:          buildEncodeArgs(req.Timeline, req.Audio, scriptPath, partial, c.settings),
		LogPath:       req.LogPath,
		TargetSeconds: req.Timeline.TotalDuration,
		Cleanup:       registry,
		OnProgress:    req.OnProgress,
	}
	if err := c.client.Encode(ctx, encodeReq); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "compositor", "encode", "encoder exceeded the job deadline", err)
		}
		detail := "encoder failed"
		if req.LogPath != "" {
			detail = "see " + req.LogPath
		}
		return services.Wrap(services.ErrEncode, "compositor", "encode", detail, err)
	}

	if err := validateOutput(ctx, c.probeBinary, partial, req.Timeline.TotalDuration); err != nil {
		return err
	}

	if err := os.Rename(partial, req.OutputPath); err != nil {
		return services.Wrap(services.ErrEncode, "compositor", "publish", "rename partial into place", err)
	}

	logger.Info("reel rendered",
		logging.String("output_path", req.OutputPath),
		logging.String("duration", fmt.Sprintf("%.1fs", req.Timeline.TotalDuration)),
	)
	return nil
}

// partialPath hides the in-flight artifact beside its destination so the
// promoting rename never crosses filesystems.
func partialPath(outputPath string) string {
	dir, base := filepath.Split(outputPath)
	return filepath.Join(dir, "."+base+".partial")
}

func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
