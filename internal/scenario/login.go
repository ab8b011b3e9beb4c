package scenario

import (
	"fmt"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

var (
	accountLoginTitle = regexp.MustCompile(`Account Login`)
	accountPageURL    = regexp.MustCompile(`account/account`)
)

func (s *Session) loginButton() playwright.Locator {
	return s.Page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Login"})
}

// submitLogin fills the returning-customer form and presses Login.
func (s *Session) submitLogin(email, password string) error {
	if err := s.Page.Locator("#input-email").Fill(email); err != nil {
		return fmt.Errorf("failed to fill email: %w", err)
	}
	if err := s.Page.Locator("#input-password").Fill(password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}
	if err := s.loginButton().Click(); err != nil {
		return fmt.Errorf("failed to click Login: %w", err)
	}
	return nil
}

func verifyPageTitle(s *Session) error {
	if err := s.Expect.Page(s.Page).ToHaveTitle(accountLoginTitle); err != nil {
		return fmt.Errorf("page title: %w", err)
	}
	return nil
}

func verifyLoginElements(s *Session) error {
	visible := []struct {
		what    string
		locator playwright.Locator
	}{
		{"email input", s.Page.Locator("#input-email")},
		{"password input", s.Page.Locator("#input-password")},
		{"Login button", s.loginButton()},
		{"Forgotten Password link", s.Page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
			Name:  "Forgotten Password",
			Exact: playwright.Bool(true),
		})},
	}
	for _, v := range visible {
		if err := s.Expect.Locator(v.locator).ToBeVisible(); err != nil {
			return fmt.Errorf("%s not visible: %w", v.what, err)
		}
	}
	return nil
}

func loginWithValidCredentials(s *Session) error {
	if err := s.submitLogin(s.Config.Email, s.Config.Password); err != nil {
		return err
	}
	if err := s.Expect.Page(s.Page).ToHaveURL(accountPageURL); err != nil {
		return fmt.Errorf("not redirected to account page: %w", err)
	}
	heading := s.Page.GetByRole(*playwright.AriaRoleHeading, playwright.PageGetByRoleOptions{Name: "My Account"})
	if err := s.Expect.Locator(heading).ToBeVisible(); err != nil {
		return fmt.Errorf("My Account heading not visible: %w", err)
	}
	return nil
}

func loginWithInvalidPassword(s *Session) error {
	if err := s.submitLogin(s.Config.Email, InvalidPassword); err != nil {
		return err
	}
	err := s.Expect.Locator(s.Page.Locator(".alert-danger")).ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		return fmt.Errorf("error alert not visible: %w", err)
	}
	return nil
}

func loginWithUnknownEmail(s *Session) error {
	if err := s.submitLogin(UnknownEmail, "anypassword"); err != nil {
		return err
	}
	if err := s.Expect.Locator(s.Page.Locator(".alert-danger")).ToContainText(NoMatchWarning); err != nil {
		return fmt.Errorf("no-match warning: %w", err)
	}
	return nil
}
