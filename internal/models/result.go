package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ResultStatus represents the outcome of one scenario
type ResultStatus string

// Result statuses
const (
	ResultPassed      ResultStatus = "passed"
	ResultFailed      ResultStatus = "failed"
	ResultSetupFailed ResultStatus = "setup_failed"
	ResultSkipped     ResultStatus = "skipped"
)

// Domain errors
var (
	ErrInvalidStatus      = errors.New("invalid result status")
	ErrEmptyScenarioID    = errors.New("scenario id cannot be empty")
	ErrRunAlreadyFinished = errors.New("run is already finished")
)

// Result is the recorded outcome of a single scenario execution
type Result struct {
	ID         string
	RunID      string
	ScenarioID string
	Title      string
	Status     ResultStatus
	Error      string
	Screenshot string
	StartedAt  time.Time
	Duration   time.Duration
}

// NewResult creates a result for a scenario that started at startedAt
func NewResult(runID, scenarioID, title string, startedAt time.Time) (*Result, error) {
	if scenarioID == "" {
		return nil, ErrEmptyScenarioID
	}
	return &Result{
		ID:         uuid.New().String(),
		RunID:      runID,
		ScenarioID: scenarioID,
		Title:      title,
		Status:     ResultSkipped,
		StartedAt:  startedAt,
	}, nil
}

// Complete stamps the result with its final status and elapsed time
func (r *Result) Complete(status ResultStatus, err error, finishedAt time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	r.Status = status
	if err != nil {
		r.Error = err.Error()
	}
	r.Duration = finishedAt.Sub(r.StartedAt)
	return nil
}

// Passed returns true if the scenario passed
func (r *Result) Passed() bool {
	return r.Status == ResultPassed
}

// Valid reports whether s is a known status
func (s ResultStatus) Valid() bool {
	switch s {
	case ResultPassed, ResultFailed, ResultSetupFailed, ResultSkipped:
		return true
	}
	return false
}

// ParseResultStatus converts a stored status back into a ResultStatus
func ParseResultStatus(s string) (ResultStatus, error) {
	status := ResultStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}
