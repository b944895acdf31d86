package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eerla/pybenders-sub000/internal/ledger"
	"github.com/eerla/pybenders-sub000/internal/textutil"
)

const runIDDisplayLength = 8

// runLookupWindow bounds the prefix search when the user passes a shortened
// run id from a previous table.
const runLookupWindow = 200

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show render run history from the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			store, err := ledger.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunJobs(cmd, store, args[0])
			}
			return printRecentRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}

func printRecentRuns(cmd *cobra.Command, store *ledger.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.ID),
			textutil.DisplayName(run.Subject),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			runDuration(run),
			strconv.Itoa(run.Total),
			strconv.Itoa(run.Succeeded),
			strconv.Itoa(run.Failed),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Subject", "Started", "Duration", "Total", "OK", "Failed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	return nil
}

func printRunJobs(cmd *cobra.Command, store *ledger.Store, runArg string) error {
	runID, err := resolveRunID(cmd.Context(), store, runArg)
	if err != nil {
		return err
	}
	jobs, err := store.RunJobs(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(jobs) == 0 {
		fmt.Fprintf(out, "No jobs recorded for run %s\n", runID)
		return nil
	}

	fmt.Fprintf(out, "Run %s\n", runID)
	fmt.Fprintln(out, jobTable(jobs))
	return nil
}

// jobTable renders per-job state and timing; shared by `runs <id>` and the
// end-of-render summary.
func jobTable(jobs []ledger.Job) string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			job.QuestionID,
			job.Profile,
			string(job.State),
			jobDuration(job),
			jobDetail(job),
		})
	}
	return renderTable(
		[]string{"Question", "Profile", "State", "Duration", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

// resolveRunID accepts either a full run id or a unique prefix of one.
func resolveRunID(ctx context.Context, store *ledger.Store, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("run id is required")
	}
	runs, err := store.RecentRuns(ctx, runLookupWindow)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, run := range runs {
		if run.ID == arg {
			return run.ID, nil
		}
		if strings.HasPrefix(run.ID, arg) {
			matches = append(matches, run.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no run matches %q; list runs with `reelbender runs`", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("run id %q is ambiguous (%d matches); use more characters", arg, len(matches))
	}
}

func shortRunID(id string) string {
	if len(id) <= runIDDisplayLength {
		return id
	}
	return id[:runIDDisplayLength]
}

func runDuration(run ledger.Run) string {
	if run.CompletedAt.IsZero() {
		return "-"
	}
	return run.CompletedAt.Sub(run.StartedAt).Round(time.Second).String()
}

func jobDuration(job ledger.Job) string {
	if job.StartedAt.IsZero() || job.FinishedAt.IsZero() {
		return "-"
	}
	return job.FinishedAt.Sub(job.StartedAt).Round(time.Second).String()
}

func jobDetail(job ledger.Job) string {
	if job.State == ledger.JobSucceeded {
		return job.OutputPath
	}
	detail := job.ErrorText
	if job.FailureKind != "" {
		detail = textutil.Ternary(detail == "", job.FailureKind, job.FailureKind+": "+detail)
	}
	return truncateDetail(detail, 72)
}

func truncateDetail(value string, max int) string {
	value = strings.TrimSpace(value)
	if max <= 3 || len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}
