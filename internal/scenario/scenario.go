// Package scenario holds the storefront user-flow scenarios and the runner
// that executes them, one fresh browser page per scenario.
package scenario

import (
	"errors"
	"fmt"

	"github.com/mockautomation/storefront-e2e/internal/config"
	"github.com/mockautomation/storefront-e2e/internal/helpers"
	"github.com/playwright-community/playwright-go"
)

// Session is what a scenario body works with: its own page, the read-only
// suite configuration and the assertion entry point.
type Session struct {
	Page   playwright.Page
	Config config.TestConfig
	Expect playwright.PlaywrightAssertions
	Status *helpers.StatusLogger

	title string
}

// NewSession wraps a page for the scenario with the given display title.
func NewSession(page playwright.Page, cfg config.TestConfig, title string) *Session {
	return &Session{
		Page:   page,
		Config: cfg,
		Expect: playwright.NewPlaywrightAssertions(),
		title:  title,
	}
}

// Name returns the scenario title used in status lines.
func (s *Session) Name() string {
	return s.title
}

func (s *Session) statusLogger() *helpers.StatusLogger {
	if s.Status != nil {
		return s.Status
	}
	return helpers.DefaultStatusLogger()
}

// Scenario is one independently runnable user flow.
type Scenario struct {
	ID    string
	Title string
	Body  func(s *Session) error
}

// Execute runs the body and logs its outcome. The body's error is returned
// unchanged.
func (sc Scenario) Execute(s *Session) (err error) {
	defer s.statusLogger().Track(s, &err)
	return sc.Body(s)
}

// SetupError marks a failure in the shared pre-scenario hook. The scenario
// body did not run.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("before each: %v", e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// IsSetupError reports whether err came from the pre-scenario hook.
func IsSetupError(err error) bool {
	var setupErr *SetupError
	return errors.As(err, &setupErr)
}
