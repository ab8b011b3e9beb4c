package helpers

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// NavigateTo loads url in page and asserts that the page ends up exactly on
// url. A redirect to any other address is reported as an error.
func NavigateTo(page playwright.Page, url string) error {
	if _, err := page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := playwright.NewPlaywrightAssertions().Page(page).ToHaveURL(url); err != nil {
		return fmt.Errorf("expected page url %s, got %s: %w", url, page.URL(), err)
	}
	return nil
}
