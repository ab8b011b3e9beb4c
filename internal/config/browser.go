package config

import (
	"fmt"
	"strconv"
	"time"
)

// Supported browser engines.
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// BrowserConfig holds settings for launching and driving the browser
type BrowserConfig struct {
	Browser         string
	Headless        bool
	SlowMo          time.Duration
	Timeout         time.Duration
	ScenarioTimeout time.Duration
	ScreenshotDir   string
	Workers         int
	Install         bool
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (BrowserConfig, error) {
	config := BrowserConfig{
		Browser:         getenv("BROWSER"),
		Headless:        true,
		Timeout:         30 * time.Second,
		ScenarioTimeout: 2 * time.Minute,
		ScreenshotDir:   getenv("SCREENSHOT_DIR"),
		Workers:         1,
	}

	switch config.Browser {
	case "":
		config.Browser = BrowserChromium
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return config, fmt.Errorf("BROWSER must be one of chromium, firefox, webkit, got %q", config.Browser)
	}

	if config.ScreenshotDir == "" {
		config.ScreenshotDir = "test-results/screenshots"
	}

	if v := getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	if v := getenv("PLAYWRIGHT_INSTALL"); v != "" {
		install, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("PLAYWRIGHT_INSTALL must be a boolean: %w", err)
		}
		config.Install = install
	}

	if v := getenv("SLOW_MO"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return config, fmt.Errorf("SLOW_MO must be a non-negative number of milliseconds: %q", v)
		}
		config.SlowMo = time.Duration(ms) * time.Millisecond
	}

	if v := getenv("TIMEOUT"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return config, fmt.Errorf("TIMEOUT must be a positive number of milliseconds: %q", v)
		}
		config.Timeout = time.Duration(ms) * time.Millisecond
	}

	if v := getenv("SCENARIO_TIMEOUT"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil || s <= 0 {
			return config, fmt.Errorf("SCENARIO_TIMEOUT must be a positive number of seconds: %q", v)
		}
		config.ScenarioTimeout = time.Duration(s) * time.Second
	}

	if v := getenv("WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return config, fmt.Errorf("WORKERS must be at least 1: %q", v)
		}
		config.Workers = n
	}

	return config, nil
}

// TimeoutMillis returns the default action timeout in the unit playwright expects.
func (c BrowserConfig) TimeoutMillis() float64 {
	return float64(c.Timeout.Milliseconds())
}
