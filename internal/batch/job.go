package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/eerla/pybenders-sub000/internal/assets"
	"github.com/eerla/pybenders-sub000/internal/compositor"
	"github.com/eerla/pybenders-sub000/internal/logging"
	"github.com/eerla/pybenders-sub000/internal/notifications"
	"github.com/eerla/pybenders-sub000/internal/services"
	"github.com/eerla/pybenders-sub000/internal/services/ffmpeg"
)

const skipReason = "skipped: batch cancelled"

// outcome is one job's terminal result.
type outcome struct {
	questionID string
	outputPath string
	reason     string
	err        error
}

// runPool feeds the plan through the workers and collects one outcome per
// job. A cancelled context stops feeding: jobs already handed to a worker
// run to completion, every remaining job is recorded as skipped.
func (s *Scheduler) runPool(ctx context.Context, logger *slog.Logger, runID string, plan []*job, workers int) []outcome {
	jobsCh := make(chan *job)
	resultsCh := make(chan outcome, len(plan))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobsCh {
				resultsCh <- s.renderJob(logger, runID, j)
			}
		}()
	}

	cancelled := false
	for _, j := range plan {
		if !cancelled {
			select {
			case <-ctx.Done():
				cancelled = true
			case jobsCh <- j:
				continue
			}
		}
		resultsCh <- s.skipJob(logger, runID, j)
	}
	close(jobsCh)
	wg.Wait()
	close(resultsCh)

	outcomes := make([]outcome, 0, len(plan))
	for oc := range resultsCh {
		outcomes = append(outcomes, oc)
	}
	return outcomes
}

func (s *Scheduler) renderJob(logger *slog.Logger, runID string, j *job) outcome {
	jobLogger := logger.With(logging.String(logging.FieldQuestionID, j.questionID))
	started := time.Now()

	// The job deadline is detached from the run context so cancelling the
	// batch lets in-flight encodes finish.
	timeout := time.Duration(s.cfg.Render.JobTimeout) * time.Second
	jobCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	jobCtx = services.WithRunID(jobCtx, runID)
	jobCtx = services.WithSubject(jobCtx, j.subject)
	jobCtx = services.WithQuestionID(jobCtx, j.questionID)

	if err := s.store.MarkJobRunning(jobCtx, runID, j.questionID); err != nil {
		jobLogger.Warn("ledger update failed; rendering anyway", logging.Error(err))
	}
	jobLogger.Info("job started",
		logging.String(logging.FieldEventType, "job_start"),
		logging.String("profile", j.profile),
		logging.Int("scenes", len(j.scenes)),
		logging.Float64("timeline_seconds", j.tl.TotalDuration),
	)

	if err := s.renderOne(jobCtx, jobLogger, j); err != nil {
		return s.failJob(jobLogger, runID, j, err, time.Since(started))
	}

	if err := s.store.MarkJobSucceeded(context.Background(), runID, j.questionID, j.outputPath); err != nil {
		jobLogger.Warn("ledger update failed", logging.Error(err))
	}
	jobLogger.Info("job completed",
		logging.String(logging.FieldEventType, "job_complete"),
		logging.String("output_path", j.outputPath),
		logging.Duration("job_duration", time.Since(started)),
	)
	return outcome{questionID: j.questionID, outputPath: j.outputPath}
}

func (s *Scheduler) renderOne(ctx context.Context, jobLogger *slog.Logger, j *job) error {
	if _, err := assets.ValidateSceneImages(j.scenes); err != nil {
		return err
	}
	audio := s.audio.Select(ctx, j.tl.TotalDuration)

	if err := os.MkdirAll(filepath.Dir(j.logPath), 0o755); err != nil {
		return services.Wrap(services.ErrEncode, "batch", "render", "create job log directory", err)
	}

	sampler := logging.NewProgressSampler(10)
	return s.comp.Render(ctx, compositor.Request{
		QuestionID:  j.questionID,
		Timeline:    j.tl,
		Audio:       audio,
		OutputPath:  j.outputPath,
		WorkDir:     j.workDir,
		KeepWorkDir: s.cfg.Render.KeepStaging,
		LogPath:     j.logPath,
		OnProgress: func(update ffmpeg.ProgressUpdate) {
			if update.Done || !sampler.ShouldLog(update.Percent, "", "") {
				return
			}
			jobLogger.Debug("encode progress",
				logging.Float64(logging.FieldProgressPercent, update.Percent),
				logging.String("speed", update.Speed),
			)
		},
	})
}

// failJob records a terminal failure everywhere it belongs. Ledger writes
// and the notification run on a background context because the job context
// is usually the thing that just expired.
func (s *Scheduler) failJob(jobLogger *slog.Logger, runID string, j *job, jobErr error, elapsed time.Duration) outcome {
	kind := services.FailureKind(jobErr)
	reason := jobErr.Error()

	if err := s.store.MarkJobFailed(context.Background(), runID, j.questionID, kind, reason); err != nil {
		jobLogger.Warn("ledger update failed", logging.Error(err))
	}
	jobLogger.Error("job failed",
		logging.Error(jobErr),
		logging.String(logging.FieldEventType, "job_failure"),
		logging.String("failure_kind", kind),
		logging.String(logging.FieldErrorHint, failureHint(kind)),
		logging.String(logging.FieldLogPath, j.logPath),
		logging.Duration("job_duration", elapsed),
	)
	s.notifyJobFailed(j.questionID, reason)
	return outcome{questionID: j.questionID, reason: reason, err: jobErr}
}

func (s *Scheduler) skipJob(logger *slog.Logger, runID string, j *job) outcome {
	if err := s.store.MarkJobFailed(context.Background(), runID, j.questionID, services.KindUnknown, skipReason); err != nil {
		logger.Warn("ledger update failed", logging.Error(err))
	}
	logger.Info("job skipped",
		logging.String(logging.FieldQuestionID, j.questionID),
		logging.String(logging.FieldEventType, "job_skipped"),
	)
	return outcome{questionID: j.questionID, reason: skipReason, err: context.Canceled}
}

func (s *Scheduler) notifyJobFailed(questionID, reason string) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Publish(context.Background(), notifications.EventJobFailed, notifications.Payload{
		"question_id": questionID,
		"reason":      reason,
	})
	if err != nil {
		s.logger.Debug("job failure notification failed", logging.Error(err))
	}
}

func failureHint(kind string) string {
	switch kind {
	case services.KindAssetMissing:
		return "check the scene image paths in the manifest"
	case services.KindEncode:
		return "see the encoder transcript"
	case services.KindTimeout:
		return "raise job_timeout or lower workers"
	default:
		return "check logs for details"
	}
}
