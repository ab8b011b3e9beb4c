package scenario

import (
	"fmt"
	"strings"

	"github.com/mockautomation/storefront-e2e/internal/helpers"
)

// SuiteName is the display name of the storefront suite.
const SuiteName = "Mock Automation User Flows (BBT)"

// Suite is a named group of scenarios sharing one setup hook.
type Suite struct {
	Name       string
	BeforeEach func(s *Session) error
	Scenarios  []Scenario
}

// NewSuite returns the full storefront suite.
func NewSuite() Suite {
	return Suite{
		Name:       SuiteName,
		BeforeEach: OpenLoginPage,
		Scenarios:  Catalogue(),
	}
}

// Run executes the setup hook and then the scenario. A hook failure is
// returned as *SetupError and is not logged as a scenario outcome.
func (su Suite) Run(s *Session, sc Scenario) error {
	if su.BeforeEach != nil {
		if err := su.BeforeEach(s); err != nil {
			return &SetupError{Err: err}
		}
	}
	return sc.Execute(s)
}

// Select returns a copy of the suite restricted to the given scenario ids,
// in catalogue order. No ids selects everything.
func (su Suite) Select(ids ...string) (Suite, error) {
	if len(ids) == 0 {
		return su, nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[strings.ToUpper(strings.TrimSpace(id))] = true
	}

	selected := su
	selected.Scenarios = nil
	for _, sc := range su.Scenarios {
		if wanted[sc.ID] {
			selected.Scenarios = append(selected.Scenarios, sc)
			delete(wanted, sc.ID)
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for id := range wanted {
			unknown = append(unknown, id)
		}
		return Suite{}, fmt.Errorf("unknown scenario ids: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}

// Validate checks that every scenario has an id, a body and a unique id.
func (su Suite) Validate() error {
	seen := make(map[string]bool, len(su.Scenarios))
	for i, sc := range su.Scenarios {
		if sc.ID == "" {
			return fmt.Errorf("scenario %d has no id", i)
		}
		if sc.Body == nil {
			return fmt.Errorf("scenario %s has no body", sc.ID)
		}
		if seen[sc.ID] {
			return fmt.Errorf("duplicate scenario id %s", sc.ID)
		}
		seen[sc.ID] = true
	}
	return nil
}

// OpenLoginPage is the shared setup hook: every scenario starts on the
// login page with the account menu rendered.
func OpenLoginPage(s *Session) error {
	if err := helpers.NavigateTo(s.Page, s.Config.BaseURL); err != nil {
		return err
	}
	if err := s.Expect.Locator(s.Page.Locator(`#column-right a[href*="login"]`)).ToBeVisible(); err != nil {
		return fmt.Errorf("login link not visible: %w", err)
	}
	return nil
}
