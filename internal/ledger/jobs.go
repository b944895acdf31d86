package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MarkJobRunning moves a pending job to running. The state guard lives in
// the WHERE clause so concurrent workers cannot double-claim a row.
func (s *Store) MarkJobRunning(ctx context.Context, runID, questionID string) error {
	res, err := s.execWithRetry(ensureContext(ctx),
		`UPDATE jobs SET state = ?, started_at = ? WHERE run_id = ? AND question_id = ? AND state = ?`,
		string(JobRunning), formatTime(time.Now()), runID, questionID, string(JobPending),
	)
	if err != nil {
		return fmt.Errorf("mark job running: %w", err)
	}
	return guardTransition(res, questionID, JobRunning)
}

// MarkJobSucceeded finishes a running job with its published output path.
func (s *Store) MarkJobSucceeded(ctx context.Context, runID, questionID, outputPath string) error {
	res, err := s.execWithRetry(ensureContext(ctx),
		`UPDATE jobs SET state = ?, output_path = ?, finished_at = ? WHERE run_id = ? AND question_id = ? AND state = ?`,
		string(JobSucceeded), outputPath, formatTime(time.Now()), runID, questionID, string(JobRunning),
	)
	if err != nil {
		return fmt.Errorf("mark job succeeded: %w", err)
	}
	return guardTransition(res, questionID, JobSucceeded)
}

// MarkJobFailed finishes a job with a classified failure. Pending jobs may
// fail directly; that is how skipped jobs are recorded when a batch is
// cancelled before they start.
func (s *Store) MarkJobFailed(ctx context.Context, runID, questionID, failureKind, errorText string) error {
	res, err := s.execWithRetry(ensureContext(ctx),
		`UPDATE jobs SET state = ?, failure_kind = ?, error = ?, finished_at = ?
         WHERE run_id = ? AND question_id = ? AND state IN (?, ?)`,
		string(JobFailed), failureKind, errorText, formatTime(time.Now()),
		runID, questionID, string(JobPending), string(JobRunning),
	)
	if err != nil {
		return fmt.Errorf("mark job failed: %w", err)
	}
	return guardTransition(res, questionID, JobFailed)
}

func guardTransition(res sql.Result, questionID string, to JobState) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: job %s cannot move to %s", ErrInvalidTransition, questionID, to)
	}
	return nil
}

// RunJobs returns all jobs of a run in insertion order.
func (s *Store) RunJobs(ctx context.Context, runID string) ([]Job, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, question_id, profile, state, output_path, failure_kind, error, started_at, finished_at
         FROM jobs WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var (
			job                 Job
			state               string
			startedAt, finished sql.NullString
		)
		if err := rows.Scan(&job.RunID, &job.QuestionID, &job.Profile, &state,
			&job.OutputPath, &job.FailureKind, &job.ErrorText, &startedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		job.State = JobState(state)
		job.StartedAt = parseTime(startedAt)
		job.FinishedAt = parseTime(finished)
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
