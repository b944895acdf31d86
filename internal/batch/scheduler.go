package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/eerla/pybenders-sub000/internal/assets"
	"github.com/eerla/pybenders-sub000/internal/compositor"
	"github.com/eerla/pybenders-sub000/internal/config"
	"github.com/eerla/pybenders-sub000/internal/deps"
	"github.com/eerla/pybenders-sub000/internal/ledger"
	"github.com/eerla/pybenders-sub000/internal/logging"
	"github.com/eerla/pybenders-sub000/internal/manifest"
	"github.com/eerla/pybenders-sub000/internal/notifications"
	"github.com/eerla/pybenders-sub000/internal/services"
	"github.com/eerla/pybenders-sub000/internal/services/ffmpeg"
	"github.com/eerla/pybenders-sub000/internal/textutil"
)

const lockFileName = "reelbender.lock"

// Scheduler runs scene manifests through the render pipeline.
type Scheduler struct {
	cfg      *config.Config
	store    *ledger.Store
	logger   *slog.Logger
	notifier notifications.Service
	comp     *compositor.Compositor
	audio    *assets.Selector
}

// Summary reports one finished batch run.
type Summary struct {
	RunID       string
	Subject     string
	ResultsPath string
	Total       int
	Succeeded   int
	Failed      int
	Duration    time.Duration
}

// New constructs a scheduler with the production encoder client and the
// notifier derived from config.
func New(cfg *config.Config, store *ledger.Store, logger *slog.Logger) *Scheduler {
	client := ffmpeg.NewCLI(ffmpeg.WithBinary(deps.ResolveFFmpegPath(cfg.FFmpegBinary())))
	return NewWithOptions(cfg, store, logger, notifications.NewService(cfg), client)
}

// NewWithOptions constructs a scheduler with a custom notifier and encoder
// client (used in tests).
func NewWithOptions(cfg *config.Config, store *ledger.Store, logger *slog.Logger, notifier notifications.Service, client ffmpeg.Client) *Scheduler {
	if logger == nil {
		logger = logging.NewNop()
	}
	probe := deps.ResolveFFprobePath(cfg.FFprobeBinary())
	return &Scheduler{
		cfg:      cfg,
		store:    store,
		logger:   logger.With(logging.String(logging.FieldComponent, "batch")),
		notifier: notifier,
		comp:     compositor.New(client, cfg, logger),
		audio:    assets.NewSelector(cfg.Paths.AudioDir, probe, logger),
	}
}

// Run renders every question in the scene manifest at manifestPath and
// returns the run summary. Errors raised before the pool starts (malformed
// manifest, unknown subject or profile, a second concurrent run) abort the
// whole batch; per-job failures are recorded in the summary instead.
func (s *Scheduler) Run(ctx context.Context, manifestPath string) (*Summary, error) {
	started := time.Now()

	doc, err := manifest.Load(manifestPath)
	if err != nil {
		s.notifyRunFailed("", err)
		return nil, err
	}

	runID := uuid.NewString()
	runLogger := s.logger.With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldSubject, doc.Subject),
	)

	plan, err := s.buildPlan(doc, runID)
	if err != nil {
		s.notifyRunFailed(doc.Subject, err)
		return nil, err
	}

	// Lock contention means another run is mid-flight; that run owns the
	// completion notification, so failing fast here stays silent on ntfy.
	lock := flock.New(filepath.Join(s.cfg.Paths.LogDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "lock", "acquire run lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "lock", "another render run is already in progress", nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			runLogger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	if err := s.recordRun(ctx, doc, runID, plan, started); err != nil {
		return nil, err
	}

	workers := workerCount(s.cfg, len(plan))
	s.notifyRunStarted(ctx, doc.Subject, len(plan))
	runLogger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("manifest_path", doc.Path),
		logging.Int("questions", len(plan)),
		logging.Int("workers", workers),
	)

	outcomes := s.runPool(ctx, runLogger, runID, plan, workers)

	// Per-job workdirs are already gone; drop the run-level staging dir
	// unless a job kept something behind.
	_ = os.Remove(filepath.Join(s.cfg.Paths.StagingDir, runID))

	results := manifest.NewResults(doc.Subject, runID)
	for _, oc := range outcomes {
		results.Record(oc.questionID, manifest.Outcome{
			Succeeded:  oc.err == nil,
			OutputPath: oc.outputPath,
			Error:      oc.reason,
		})
	}
	resultsPath := manifest.ResultsPath(doc.Path)
	if err := manifest.WriteResults(resultsPath, results); err != nil {
		runLogger.Error("results manifest write failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "results_write_failed"),
			logging.String(logging.FieldErrorHint, "check free space next to the scene manifest"),
		)
		return nil, err
	}

	// Ledger completion and the wrap-up notification run detached from ctx:
	// a cancelled run still finished its in-flight jobs and wrote results,
	// and that is worth recording.
	if err := s.store.CompleteRun(context.Background(), runID, resultsPath, results.Succeeded, results.Failed); err != nil {
		runLogger.Warn("ledger completion failed; run history will show the run as unfinished",
			logging.Error(err),
		)
	}

	duration := time.Since(started)
	s.notifyRunCompleted(doc.Subject, results.Succeeded, results.Failed, duration)
	runLogger.Info("run completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("succeeded", results.Succeeded),
		logging.Int("failed", results.Failed),
		logging.String("results_path", resultsPath),
		logging.Duration("run_duration", duration),
	)

	return &Summary{
		RunID:       runID,
		Subject:     doc.Subject,
		ResultsPath: resultsPath,
		Total:       len(plan),
		Succeeded:   results.Succeeded,
		Failed:      results.Failed,
		Duration:    duration,
	}, nil
}

func (s *Scheduler) recordRun(ctx context.Context, doc *manifest.Document, runID string, plan []*job, started time.Time) error {
	jobs := make([]ledger.Job, 0, len(plan))
	for _, j := range plan {
		jobs = append(jobs, ledger.Job{QuestionID: j.questionID, Profile: j.profile})
	}
	run := ledger.Run{
		ID:           runID,
		Subject:      doc.Subject,
		ManifestPath: doc.Path,
		StartedAt:    started.UTC(),
	}
	if err := s.store.CreateRun(ctx, run, jobs); err != nil {
		return services.Wrap(nil, "batch", "record", "persist run", err)
	}
	return nil
}

func (s *Scheduler) notifyRunStarted(ctx context.Context, subject string, count int) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Publish(ctx, notifications.EventRunStarted, notifications.Payload{
		"subject": textutil.DisplayName(subject),
		"count":   strconv.Itoa(count),
	})
	if err != nil {
		s.logger.Debug("run start notification failed", logging.Error(err))
	}
}

func (s *Scheduler) notifyRunCompleted(subject string, succeeded, failed int, duration time.Duration) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Publish(context.Background(), notifications.EventRunCompleted, notifications.Payload{
		"subject":   textutil.DisplayName(subject),
		"succeeded": strconv.Itoa(succeeded),
		"failed":    strconv.Itoa(failed),
		"duration":  duration.Round(time.Second).String(),
	})
	if err != nil {
		s.logger.Debug("run completion notification failed", logging.Error(err))
	}
}

func (s *Scheduler) notifyRunFailed(subject string, runErr error) {
	if s.notifier == nil || runErr == nil {
		return
	}
	payload := notifications.Payload{"error": runErr.Error()}
	if subject != "" {
		payload["subject"] = textutil.DisplayName(subject)
	}
	if err := s.notifier.Publish(context.Background(), notifications.EventRunFailed, payload); err != nil {
		s.logger.Debug("run failure notification failed", logging.Error(err))
	}
}
