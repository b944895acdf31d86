package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreateRun records a new run and its submitted jobs in one transaction.
// Every job starts pending; the run total is the job count.
func (s *Store) CreateRun(ctx context.Context, run Run, jobs []Job) error {
	ctx = ensureContext(ctx)
	if run.ID == "" {
		return fmt.Errorf("create run: missing run id")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin run tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, subject, manifest_path, started_at, total) VALUES (?, ?, ?, ?, ?)`,
			run.ID, run.Subject, run.ManifestPath, formatTime(run.StartedAt), len(jobs),
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, job := range jobs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO jobs (run_id, question_id, profile, state) VALUES (?, ?, ?, ?)`,
				run.ID, job.QuestionID, job.Profile, string(JobPending),
			); err != nil {
				return fmt.Errorf("insert job %s: %w", job.QuestionID, err)
			}
		}
		return tx.Commit()
	})
}

// CompleteRun stamps the run's completion, tallies, and results path.
func (s *Store) CompleteRun(ctx context.Context, runID, resultsPath string, succeeded, failed int) error {
	res, err := s.execWithRetry(ensureContext(ctx),
		`UPDATE runs SET completed_at = ?, results_path = ?, succeeded = ?, failed = ? WHERE id = ?`,
		formatTime(time.Now()), resultsPath, succeeded, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("complete run: run %s not found", runID)
	}
	return nil
}

// RecentRuns returns runs newest first, up to limit.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, manifest_path, results_path, started_at, completed_at, total, succeeded, failed
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                  Run
			startedAt, completed sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Subject, &run.ManifestPath, &run.ResultsPath,
			&startedAt, &completed, &run.Total, &run.Succeeded, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(startedAt)
		run.CompletedAt = parseTime(completed)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
