package scenario

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mockautomation/storefront-e2e/internal/config"
	"github.com/mockautomation/storefront-e2e/internal/helpers"
	"github.com/mockautomation/storefront-e2e/internal/models"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/sync/errgroup"
)

// Recorder persists runs and their results
type Recorder interface {
	CreateRun(ctx context.Context, run *models.Run) error
	RecordResult(ctx context.Context, result *models.Result) error
	FinishRun(ctx context.Context, run *models.Run) error
}

// Observer is told about every finished scenario
type Observer interface {
	Observe(result *models.Result)
}

// Runner executes a suite against a launched browser
type Runner struct {
	Browser  playwright.Browser
	Config   config.TestConfig
	Options  config.BrowserConfig
	Status   *helpers.StatusLogger
	Recorder Recorder
	Observer Observer
}

// Run executes every scenario of the suite, at most Options.Workers at a
// time. Scenario failures are collected in the returned run; the error is
// reserved for problems with the run itself.
func (r *Runner) Run(ctx context.Context, suite Suite) (*models.Run, error) {
	if err := suite.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	run := models.NewRun(suite.Name, r.Config.Origin(), r.Options.Browser)
	if r.Recorder != nil {
		if err := r.Recorder.CreateRun(ctx, run); err != nil {
			return nil, err
		}
	}

	// History writes outlive an interrupt so the stored run still gets
	// its skipped results and a finish time.
	recordCtx := context.WithoutCancel(ctx)

	workers := r.Options.Workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	results := make([]*models.Result, 0, len(suite.Scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, sc := range suite.Scenarios {
		sc := sc
		g.Go(func() error {
			result := r.runScenario(gctx, run.ID, suite, sc)
			r.record(recordCtx, result)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			return nil // scenario failures live in the result
		})
	}
	_ = g.Wait()

	for _, result := range results {
		if err := run.Add(result); err != nil {
			return run, err
		}
	}
	if err := run.Finish(time.Now()); err != nil {
		return run, err
	}

	if r.Recorder != nil {
		if err := r.Recorder.FinishRun(recordCtx, run); err != nil {
			return run, err
		}
	}

	log.Printf("Run %s finished: %s", run.ID, run.Summary())
	return run, nil
}

func (r *Runner) record(ctx context.Context, result *models.Result) {
	if r.Observer != nil {
		r.Observer.Observe(result)
	}
	if r.Recorder != nil {
		if err := r.Recorder.RecordResult(ctx, result); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
}

func (r *Runner) runScenario(ctx context.Context, runID string, suite Suite, sc Scenario) *models.Result {
	result, err := models.NewResult(runID, sc.ID, sc.Title, time.Now())
	if err != nil {
		// Validate rejects empty ids, so this is unreachable for a valid suite.
		return &models.Result{ScenarioID: sc.ID, Title: sc.Title, Status: models.ResultFailed, Error: err.Error()}
	}

	if err := ctx.Err(); err != nil {
		r.complete(result, models.ResultSkipped, err)
		return result
	}

	if r.Options.ScenarioTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Options.ScenarioTimeout)
		defer cancel()
	}

	browserCtx, err := r.Browser.NewContext()
	if err != nil {
		r.complete(result, models.ResultSetupFailed, fmt.Errorf("could not create browser context: %w", err))
		return result
	}
	defer browserCtx.Close()

	// Closing the context makes any pending playwright call fail, which is
	// how a scenario is interrupted.
	stop := context.AfterFunc(ctx, func() { browserCtx.Close() })
	defer stop()

	page, err := browserCtx.NewPage()
	if err != nil {
		r.complete(result, models.ResultSetupFailed, fmt.Errorf("could not create page: %w", err))
		return result
	}
	if r.Options.Timeout > 0 {
		page.SetDefaultTimeout(r.Options.TimeoutMillis())
	}

	session := NewSession(page, r.Config, sc.Title)
	session.Status = r.Status

	err = suite.Run(session, sc)
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("scenario interrupted (%v): %w", ctx.Err(), err)
	}

	switch {
	case err == nil:
		r.complete(result, models.ResultPassed, nil)
	case IsSetupError(err):
		result.Screenshot = r.screenshot(page, sc.ID)
		r.complete(result, models.ResultSetupFailed, err)
	default:
		result.Screenshot = r.screenshot(page, sc.ID)
		r.complete(result, models.ResultFailed, err)
	}
	return result
}

func (r *Runner) complete(result *models.Result, status models.ResultStatus, err error) {
	if cerr := result.Complete(status, err, time.Now()); cerr != nil {
		log.Printf("Warning: %v", cerr)
	}
}

// screenshot saves the page state of a failed scenario. It returns the file
// path, or "" when screenshots are disabled or the page is gone.
func (r *Runner) screenshot(page playwright.Page, scenarioID string) string {
	if r.Options.ScreenshotDir == "" || page.IsClosed() {
		return ""
	}
	if err := os.MkdirAll(r.Options.ScreenshotDir, 0o755); err != nil {
		log.Printf("Warning: could not create screenshot dir: %v", err)
		return ""
	}

	path := filepath.Join(r.Options.ScreenshotDir, fmt.Sprintf("%s_%d.png", scenarioID, time.Now().UnixNano()))
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Printf("Warning: could not take screenshot for %s: %v", scenarioID, err)
		return ""
	}
	return path
}
