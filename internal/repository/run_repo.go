package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mockautomation/storefront-e2e/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// RunRepository stores suite runs and their scenario results
type RunRepository struct {
	db *sql.DB
}

// RunSummary is one row of run history
type RunSummary struct {
	ID         string
	Suite      string
	Target     string
	Browser    string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Summary    models.Summary
}

// NewRunRepository creates a new run repository on the given connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new, unfinished run
func (r *RunRepository) CreateRun(ctx context.Context, run *models.Run) error {
	query := `
		INSERT INTO test_runs (id, suite, target, browser, started_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, run.ID, run.Suite, run.Target, run.Browser, run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// RecordResult inserts one scenario result
func (r *RunRepository) RecordResult(ctx context.Context, result *models.Result) error {
	query := `
		INSERT INTO scenario_results (id, run_id, scenario_id, title, status, error, screenshot, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.RunID,
		result.ScenarioID,
		result.Title,
		string(result.Status),
		nullString(result.Error),
		nullString(result.Screenshot),
		result.StartedAt,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record result for %s: %w", result.ScenarioID, err)
	}

	return nil
}

// FinishRun stores the finish time and the outcome counters of a run
func (r *RunRepository) FinishRun(ctx context.Context, run *models.Run) error {
	query := `
		UPDATE test_runs
		SET finished_at = $1, passed = $2, failed = $3, setup_failed = $4, skipped = $5
		WHERE id = $6
	`

	s := run.Summary()
	result, err := r.db.ExecContext(ctx, query, run.FinishedAt, s.Passed, s.Failed, s.SetupFailed, s.Skipped, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// GetRun loads a run with all of its results
func (r *RunRepository) GetRun(ctx context.Context, id string) (*models.Run, error) {
	query := `
		SELECT id, suite, target, browser, started_at, finished_at
		FROM test_runs
		WHERE id = $1
	`

	run := &models.Run{}
	var finishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.Suite,
		&run.Target,
		&run.Browser,
		&run.StartedAt,
		&finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	results, err := r.ListResults(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Results = results
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	return run, nil
}

// ListResults returns the results of a run ordered by scenario id
func (r *RunRepository) ListResults(ctx context.Context, runID string) ([]*models.Result, error) {
	query := `
		SELECT id, run_id, scenario_id, title, status,
		       COALESCE(error, ''), COALESCE(screenshot, ''), started_at, duration_ms
		FROM scenario_results
		WHERE run_id = $1
		ORDER BY scenario_id
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		res := &models.Result{}
		var status string
		var durationMS int64
		if err := rows.Scan(
			&res.ID,
			&res.RunID,
			&res.ScenarioID,
			&res.Title,
			&status,
			&res.Error,
			&res.Screenshot,
			&res.StartedAt,
			&durationMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if res.Status, err = models.ParseResultStatus(status); err != nil {
			return nil, err
		}
		res.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}

// RecentRuns returns the newest runs first
func (r *RunRepository) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, suite, target, browser, started_at, finished_at, passed, failed, setup_failed, skipped
		FROM test_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var rs RunSummary
		if err := rows.Scan(
			&rs.ID,
			&rs.Suite,
			&rs.Target,
			&rs.Browser,
			&rs.StartedAt,
			&rs.FinishedAt,
			&rs.Summary.Passed,
			&rs.Summary.Failed,
			&rs.Summary.SetupFailed,
			&rs.Summary.Skipped,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rs.Summary.Total = rs.Summary.Passed + rs.Summary.Failed + rs.Summary.SetupFailed + rs.Summary.Skipped
		if rs.FinishedAt.Valid {
			rs.Summary.Duration = rs.FinishedAt.Time.Sub(rs.StartedAt)
		}
		runs = append(runs, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
