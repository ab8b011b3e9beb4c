package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Run groups the results of one suite execution against one storefront
type Run struct {
	ID         string
	Suite      string
	Target     string
	Browser    string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []*Result
}

// Summary counts results by status
type Summary struct {
	Total       int
	Passed      int
	Failed      int
	SetupFailed int
	Skipped     int
	Duration    time.Duration
}

// NewRun creates a new run starting now
func NewRun(suite, target, browser string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Suite:     suite,
		Target:    target,
		Browser:   browser,
		StartedAt: time.Now(),
	}
}

// Add appends a result to the run
func (r *Run) Add(result *Result) error {
	if r.IsFinished() {
		return ErrRunAlreadyFinished
	}
	result.RunID = r.ID
	r.Results = append(r.Results, result)
	return nil
}

// Finish marks the run as complete and orders the results by scenario id
func (r *Run) Finish(at time.Time) error {
	if r.IsFinished() {
		return ErrRunAlreadyFinished
	}
	sort.SliceStable(r.Results, func(i, j int) bool {
		return r.Results[i].ScenarioID < r.Results[j].ScenarioID
	})
	r.FinishedAt = at
	return nil
}

// IsFinished returns true once Finish has been called
func (r *Run) IsFinished() bool {
	return !r.FinishedAt.IsZero()
}

// Summary tallies the results collected so far
func (r *Run) Summary() Summary {
	s := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Status {
		case ResultPassed:
			s.Passed++
		case ResultFailed:
			s.Failed++
		case ResultSetupFailed:
			s.SetupFailed++
		case ResultSkipped:
			s.Skipped++
		}
	}
	if r.IsFinished() {
		s.Duration = r.FinishedAt.Sub(r.StartedAt)
	}
	return s
}

// OK returns true if nothing failed and nothing was skipped by an interrupted run
func (s Summary) OK() bool {
	return s.Failed == 0 && s.SetupFailed == 0 && s.Skipped == 0
}

// String formats the summary for console output
func (s Summary) String() string {
	return fmt.Sprintf("%d scenarios: %d passed, %d failed, %d setup failed, %d skipped (%s)",
		s.Total, s.Passed, s.Failed, s.SetupFailed, s.Skipped, s.Duration.Round(time.Millisecond))
}
