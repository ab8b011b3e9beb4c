package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultStorefrontURL is the origin of the public storefront under test.
const DefaultStorefrontURL = "https://ecommerce-playground.lambdatest.io"

// LoginRoute is the route every scenario starts from.
const LoginRoute = "account/login"

// TestConfig holds the storefront location and the credentials of the test account.
type TestConfig struct {
	BaseURL   string
	FirstName string
	LastName  string
	Email     string
	Password  string

	origin string
}

// LoadTestConfig reads the suite configuration from the environment.
// Missing credentials are left empty; call Validate to fail fast.
func LoadTestConfig(getenv func(string) string) TestConfig {
	origin := strings.TrimRight(getenv("STOREFRONT_URL"), "/")
	if origin == "" {
		origin = DefaultStorefrontURL
	}

	cfg := TestConfig{
		FirstName: getenv("TEST_FIRST_NAME"),
		LastName:  getenv("TEST_LAST_NAME"),
		Email:     getenv("TEST_EMAIL"),
		Password:  getenv("TEST_PASSWORD"),
		origin:    origin,
	}
	cfg.BaseURL = cfg.PageURL(LoginRoute)

	return cfg
}

// WithOrigin returns a copy of the config pointed at another storefront origin.
func (c TestConfig) WithOrigin(origin string) TestConfig {
	c.origin = strings.TrimRight(origin, "/")
	c.BaseURL = c.PageURL(LoginRoute)
	return c
}

// Origin returns the scheme and host of the storefront.
func (c TestConfig) Origin() string {
	if c.origin == "" {
		return DefaultStorefrontURL
	}
	return c.origin
}

// PageURL builds an index.php URL for the given route. Extra params are
// appended in the order given as key, value pairs.
func (c TestConfig) PageURL(route string, params ...string) string {
	var b strings.Builder
	b.WriteString(c.Origin())
	b.WriteString("/index.php?route=")
	b.WriteString(route)
	for i := 0; i+1 < len(params); i += 2 {
		b.WriteString("&")
		b.WriteString(url.QueryEscape(params[i]))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(params[i+1]))
	}
	return b.String()
}

// Validate reports every credential variable that is not set.
func (c TestConfig) Validate() error {
	var errs []error
	required := []struct {
		name  string
		value string
	}{
		{"TEST_FIRST_NAME", c.FirstName},
		{"TEST_LAST_NAME", c.LastName},
		{"TEST_EMAIL", c.Email},
		{"TEST_PASSWORD", c.Password},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}
	return errors.Join(errs...)
}
