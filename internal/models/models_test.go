package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResult(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		res, err := NewResult("run-1", "TC001", "TC001 - title", start)
		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, ResultSkipped, res.Status)
		assert.Equal(t, start, res.StartedAt)
	})

	t.Run("empty scenario id", func(t *testing.T) {
		_, err := NewResult("run-1", "", "x", start)
		assert.ErrorIs(t, err, ErrEmptyScenarioID)
	})
}

func TestResult_Complete(t *testing.T) {
	start := time.Now()
	res, err := NewResult("", "TC004", "TC004", start)
	require.NoError(t, err)

	// WHEN
	err = res.Complete(ResultFailed, errors.New("alert not visible"), start.Add(2*time.Second))

	// THEN
	require.NoError(t, err)
	assert.Equal(t, ResultFailed, res.Status)
	assert.Equal(t, "alert not visible", res.Error)
	assert.Equal(t, 2*time.Second, res.Duration)
	assert.False(t, res.Passed())

	assert.ErrorIs(t, res.Complete("exploded", nil, start), ErrInvalidStatus)
}

func TestParseResultStatus(t *testing.T) {
	for _, s := range []string{"passed", "failed", "setup_failed", "skipped"} {
		got, err := ParseResultStatus(s)
		require.NoError(t, err)
		assert.Equal(t, ResultStatus(s), got)
	}
	_, err := ParseResultStatus("flaky")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRun_SummaryAndFinish(t *testing.T) {
	// GIVEN
	run := NewRun("suite", "http://localhost", "chromium")
	statuses := map[string]ResultStatus{
		"TC003": ResultFailed,
		"TC001": ResultPassed,
		"TC002": ResultPassed,
		"TC004": ResultSetupFailed,
	}
	for id, status := range statuses {
		res, err := NewResult(run.ID, id, id, run.StartedAt)
		require.NoError(t, err)
		require.NoError(t, res.Complete(status, nil, run.StartedAt))
		require.NoError(t, run.Add(res))
	}

	// WHEN
	require.NoError(t, run.Finish(run.StartedAt.Add(time.Minute)))
	summary := run.Summary()

	// THEN
	assert.Equal(t, Summary{Total: 4, Passed: 2, Failed: 1, SetupFailed: 1, Duration: time.Minute}, summary)
	assert.False(t, summary.OK())
	assert.Equal(t, "TC001", run.Results[0].ScenarioID)
	assert.Equal(t, "TC004", run.Results[3].ScenarioID)
	for _, res := range run.Results {
		assert.Equal(t, run.ID, res.RunID)
	}
	assert.Equal(t, "4 scenarios: 2 passed, 1 failed, 1 setup failed, 0 skipped (1m0s)", summary.String())
}

func TestRun_FinishedRunRejectsChanges(t *testing.T) {
	run := NewRun("suite", "target", "webkit")
	require.NoError(t, run.Finish(time.Now()))

	res, err := NewResult(run.ID, "TC001", "TC001", time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, run.Add(res), ErrRunAlreadyFinished)
	assert.ErrorIs(t, run.Finish(time.Now()), ErrRunAlreadyFinished)
	assert.True(t, run.Summary().OK())
}
