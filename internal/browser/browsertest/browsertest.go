// Package browsertest shares one headless browser between the tests of a
// package. Tests skip when no playwright driver is installed
// (go run github.com/playwright-community/playwright-go/cmd/playwright@latest install chromium).
package browsertest

import (
	"os"
	"testing"

	"github.com/mockautomation/storefront-e2e/internal/browser"
	"github.com/mockautomation/storefront-e2e/internal/config"
	"github.com/playwright-community/playwright-go"
)

var (
	shared    *browser.Browser
	launchErr error
)

// Main launches the browser, runs the tests and tears everything down.
// Use it from TestMain: os.Exit(browsertest.Main(m)).
func Main(m *testing.M) int {
	cfg, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		launchErr = err
		return m.Run()
	}

	shared, launchErr = browser.Launch(cfg)
	if launchErr == nil {
		defer shared.Close()
	}

	return m.Run()
}

// Browser returns the shared browser or skips the test.
func Browser(t testing.TB) playwright.Browser {
	t.Helper()
	if launchErr != nil {
		t.Skipf("browser unavailable: %v", launchErr)
	}
	if shared == nil {
		t.Skip("browser unavailable: browsertest.Main was not called from TestMain")
	}
	return shared.Browser
}

// NewPage opens a page in a fresh context that is closed when the test ends.
func NewPage(t testing.TB) playwright.Page {
	t.Helper()
	ctx, err := Browser(t).NewContext()
	if err != nil {
		t.Fatalf("Failed to create browser context: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })

	page, err := ctx.NewPage()
	if err != nil {
		t.Fatalf("Failed to open page: %v", err)
	}
	return page
}
