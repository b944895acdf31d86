package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eerla/pybenders-sub000/internal/batch"
	"github.com/eerla/pybenders-sub000/internal/ledger"
	"github.com/eerla/pybenders-sub000/internal/logging"
	"github.com/eerla/pybenders-sub000/internal/textutil"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var manifestFlag string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every reel in a scene manifest",
		Long: `Render expands each question in the scene manifest against the content
profile catalog, renders the reels across a worker pool, and writes a results
manifest next to the input. The results manifest path is the final stdout
line, so pipeline wrappers can capture it directly.

Per-job failures do not fail the command; they are recorded in the results
manifest and the run ledger for the downstream publisher to act on.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			retention := jobLogRetentionTargets(cfg.Paths.LogDir)
			logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, retention...)
			for _, target := range retention {
				// Only succeeds once the run dir is empty.
				_ = os.Remove(target.Dir)
			}

			store, err := ledger.Open(cfg)
			if err != nil {
				logger.Error("open run ledger", logging.Error(err))
				return err
			}
			defer store.Close()

			scheduler := batch.New(cfg, store, logger)
			summary, err := scheduler.Run(signalCtx, manifestFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rendered %d/%d reels for %s in %s\n",
				summary.Succeeded, summary.Total,
				textutil.DisplayName(summary.Subject),
				summary.Duration.Round(time.Second))
			// A cancelled run still recorded its jobs; read them off a
			// fresh context so the table prints either way.
			if jobs, jobsErr := store.RunJobs(context.Background(), summary.RunID); jobsErr == nil && len(jobs) > 0 {
				fmt.Fprintln(out, jobTable(jobs))
			}
			if summary.Failed > 0 {
				fmt.Fprintf(out, "%d jobs failed; transcripts under %s\n",
					summary.Failed, filepath.Join(cfg.Paths.LogDir, "jobs", summary.RunID))
			}
			fmt.Fprintln(out, summary.ResultsPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Path to the scene manifest JSON")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

// jobLogRetentionTargets lists each per-run transcript directory as its own
// target because the retention sweep does not descend into subdirectories.
func jobLogRetentionTargets(logDir string) []logging.RetentionTarget {
	jobsDir := filepath.Join(logDir, "jobs")
	entries, err := os.ReadDir(jobsDir)
	if err != nil {
		return nil
	}
	targets := make([]logging.RetentionTarget, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		targets = append(targets, logging.RetentionTarget{
			Dir:     filepath.Join(jobsDir, entry.Name()),
			Pattern: "*.log",
		})
	}
	return targets
}
