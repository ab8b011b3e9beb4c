package browser

import (
	"fmt"
	"log"

	"github.com/mockautomation/storefront-e2e/internal/config"
	"github.com/playwright-community/playwright-go"
)

// Browser owns a playwright driver and one launched browser
type Browser struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Config     config.BrowserConfig
}

// Launch starts playwright and the configured browser engine
func Launch(cfg config.BrowserConfig) (*Browser, error) {
	runOptions := &playwright.RunOptions{
		Browsers: []string{cfg.Browser},
	}

	if cfg.Install {
		if err := playwright.Install(runOptions); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run(runOptions)
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browserType, err := engine(pw, cfg.Browser)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	launched, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", cfg.Browser, err)
	}

	log.Printf("Launched %s %s (headless=%t)", cfg.Browser, launched.Version(), cfg.Headless)

	return &Browser{
		Playwright: pw,
		Browser:    launched,
		Config:     cfg,
	}, nil
}

// Close shuts down the browser and the playwright driver
func (b *Browser) Close() error {
	var firstErr error
	if b.Browser != nil {
		if err := b.Browser.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close browser: %w", err)
		}
	}
	if b.Playwright != nil {
		if err := b.Playwright.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
	}
	return firstErr
}

func engine(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case config.BrowserChromium, "":
		return pw.Chromium, nil
	case config.BrowserFirefox:
		return pw.Firefox, nil
	case config.BrowserWebKit:
		return pw.WebKit, nil
	}
	return nil, fmt.Errorf("unsupported browser %q", name)
}
