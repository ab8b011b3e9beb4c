package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"text/tabwriter"
	"time"

	"github.com/mockautomation/storefront-e2e/internal/models"
	"github.com/mockautomation/storefront-e2e/internal/repository"
	"github.com/mockautomation/storefront-e2e/internal/scenario"
)

// SuiteRunner is what RunSuite needs from the scenario runner
type SuiteRunner interface {
	Run(ctx context.Context, suite scenario.Suite) (*models.Run, error)
}

// MetricsWriter dumps collected metrics to a file
type MetricsWriter interface {
	WriteTextfile(path string) error
}

// RunDependencies holds everything needed to run the suite once
type RunDependencies struct {
	Runner      SuiteRunner
	Suite       scenario.Suite
	Out         io.Writer
	Metrics     MetricsWriter
	MetricsFile string
}

// ErrScenariosFailed is returned when the run completed with failures
var ErrScenariosFailed = errors.New("one or more scenarios failed")

// RunSuite runs the suite, prints a report and writes metrics if asked to
func RunSuite(ctx context.Context, deps RunDependencies) (*models.Run, error) {
	run, err := deps.Runner.Run(ctx, deps.Suite)
	if err != nil {
		return run, fmt.Errorf("suite run failed: %w", err)
	}

	PrintReport(deps.Out, run)

	if deps.Metrics != nil && deps.MetricsFile != "" {
		if err := deps.Metrics.WriteTextfile(deps.MetricsFile); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	if !run.Summary().OK() {
		return run, ErrScenariosFailed
	}
	return run, nil
}

// PrintReport writes one row per result followed by the summary line
func PrintReport(out io.Writer, run *models.Run) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s\t%s\t%s\t%s\n", "SCENARIO", "STATUS", "DURATION", "ERROR")
	for _, res := range run.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", res.ScenarioID, res.Status, res.Duration.Round(time.Millisecond), firstLine(res.Error))
	}
	w.Flush()
	fmt.Fprintf(out, "\nRun %s against %s: %s\n", run.ID, run.Target, run.Summary())
}

// PrintHistory writes recent runs as a table
func PrintHistory(out io.Writer, runs []repository.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", "RUN", "STARTED", "BROWSER", "TARGET", "RESULT")
	for _, r := range runs {
		result := "running"
		if r.FinishedAt.Valid {
			result = fmt.Sprintf("%d/%d passed", r.Summary.Passed, r.Summary.Total)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.StartedAt.Format(time.RFC3339), r.Browser, r.Target, result)
	}
	w.Flush()
}

// PrintCatalogue lists the scenarios of a suite
func PrintCatalogue(out io.Writer, suite scenario.Suite) {
	fmt.Fprintln(out, suite.Name)
	for _, sc := range suite.Scenarios {
		fmt.Fprintf(out, "  %s\n", sc.Title)
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
