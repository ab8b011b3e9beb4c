package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mockautomation/storefront-e2e/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*RunRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRunRepository(db), mock
}

func TestRunRepository_CreateRun(t *testing.T) {
	repo, mock := newMockRepo(t)
	run := models.NewRun("suite", "http://localhost:8080", "chromium")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO test_runs")).
		WithArgs(run.ID, "suite", "http://localhost:8080", "chromium", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateRun(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_CreateRunError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO test_runs").WillReturnError(errors.New("duplicate key"))

	err := repo.CreateRun(context.Background(), models.NewRun("s", "t", "b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create run")
}

func TestRunRepository_RecordResult(t *testing.T) {
	tests := []struct {
		name       string
		result     *models.Result
		wantError  interface{}
		wantScreen interface{}
	}{
		{
			name:       "passed result stores NULL error",
			result:     &models.Result{ID: "r1", RunID: "run", ScenarioID: "TC001", Title: "TC001", Status: models.ResultPassed, Duration: 1500 * time.Millisecond},
			wantError:  nil,
			wantScreen: nil,
		},
		{
			name: "failed result keeps error and screenshot",
			result: &models.Result{ID: "r2", RunID: "run", ScenarioID: "TC008", Title: "TC008", Status: models.ResultFailed,
				Error: "expected 2 got 3", Screenshot: "shots/TC008.png", Duration: 2 * time.Second},
			wantError:  "expected 2 got 3",
			wantScreen: "shots/TC008.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO scenario_results")).
				WithArgs(tt.result.ID, "run", tt.result.ScenarioID, tt.result.Title, string(tt.result.Status),
					tt.wantError, tt.wantScreen, sqlmock.AnyArg(), tt.result.Duration.Milliseconds()).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, repo.RecordResult(context.Background(), tt.result))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunRepository_FinishRun(t *testing.T) {
	run := models.NewRun("suite", "target", "chromium")
	for id, status := range map[string]models.ResultStatus{"TC001": models.ResultPassed, "TC002": models.ResultFailed} {
		res, err := models.NewResult(run.ID, id, id, run.StartedAt)
		require.NoError(t, err)
		require.NoError(t, res.Complete(status, nil, run.StartedAt))
		require.NoError(t, run.Add(res))
	}
	require.NoError(t, run.Finish(time.Now()))

	t.Run("updates counters", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE test_runs")).
			WithArgs(sqlmock.AnyArg(), 1, 1, 0, 0, run.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.FinishRun(context.Background(), run))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown run", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("UPDATE test_runs").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.FinishRun(context.Background(), run), ErrRunNotFound)
	})
}

func TestRunRepository_GetRun(t *testing.T) {
	started := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	finished := started.Add(90 * time.Second)

	t.Run("with results", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM test_runs")).
			WithArgs("run-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "suite", "target", "browser", "started_at", "finished_at"}).
				AddRow("run-1", "suite", "http://x", "chromium", started, finished))
		mock.ExpectQuery(regexp.QuoteMeta("FROM scenario_results")).
			WithArgs("run-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "run_id", "scenario_id", "title", "status", "error", "screenshot", "started_at", "duration_ms"}).
				AddRow("r1", "run-1", "TC001", "TC001 - title", "passed", "", "", started, int64(1200)).
				AddRow("r2", "run-1", "TC004", "TC004 - title", "failed", "boom", "a.png", started, int64(5000)))

		run, err := repo.GetRun(context.Background(), "run-1")

		require.NoError(t, err)
		assert.Equal(t, finished, run.FinishedAt)
		require.Len(t, run.Results, 2)
		assert.Equal(t, 1200*time.Millisecond, run.Results[0].Duration)
		assert.Equal(t, models.ResultFailed, run.Results[1].Status)
		assert.Equal(t, "boom", run.Results[1].Error)
		assert.Equal(t, 1, run.Summary().Failed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("FROM test_runs").WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetRun(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("corrupt status", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("FROM scenario_results").WithArgs("run-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "run_id", "scenario_id", "title", "status", "error", "screenshot", "started_at", "duration_ms"}).
				AddRow("r1", "run-1", "TC001", "t", "exploded", "", "", started, int64(1)))

		_, err := repo.ListResults(context.Background(), "run-1")
		assert.ErrorIs(t, err, models.ErrInvalidStatus)
	})
}

func TestRunRepository_RecentRuns(t *testing.T) {
	repo, mock := newMockRepo(t)
	started := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY started_at DESC")).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "suite", "target", "browser", "started_at", "finished_at", "passed", "failed", "setup_failed", "skipped"}).
			AddRow("run-2", "suite", "http://x", "firefox", started, started.Add(time.Minute), 9, 1, 0, 0).
			AddRow("run-1", "suite", "http://x", "chromium", started, nil, 0, 0, 0, 0))

	runs, err := repo.RecentRuns(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 10, runs[0].Summary.Total)
	assert.Equal(t, time.Minute, runs[0].Summary.Duration)
	assert.False(t, runs[1].FinishedAt.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}
