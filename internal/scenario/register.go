package scenario

import (
	"fmt"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

var registerPageURL = regexp.MustCompile(`account/register`)

func (s *Session) clickContinueLink() error {
	link := s.Page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{Name: "Continue"})
	if err := link.Click(); err != nil {
		return fmt.Errorf("failed to click Continue link: %w", err)
	}
	return nil
}

func openRegistration(s *Session) error {
	if err := s.clickContinueLink(); err != nil {
		return err
	}
	if err := s.Expect.Page(s.Page).ToHaveURL(registerPageURL); err != nil {
		return fmt.Errorf("not on registration page: %w", err)
	}
	if err := s.Expect.Locator(s.Page.Locator(`h1:has-text("Register Account")`)).ToBeVisible(); err != nil {
		return fmt.Errorf("Register Account heading not visible: %w", err)
	}
	return nil
}

// registerWithMissingName clears the last name field while the assertion
// targets the first name message. The first name field is never filled, so
// its message is what the storefront renders. Kept as-is: see DESIGN.md.
func registerWithMissingName(s *Session) error {
	if err := s.clickContinueLink(); err != nil {
		return err
	}

	fields := []struct {
		selector string
		value    string
	}{
		{"#input-lastname", ""},
		{"#input-email", fmt.Sprintf("testuser%d@example.com", time.Now().UnixMilli())},
		{"#input-telephone", "1234567890"},
		{"#input-password", "password123"},
		{"#input-confirm", "password123"},
	}
	for _, f := range fields {
		if err := s.Page.Locator(f.selector).Fill(f.value); err != nil {
			return fmt.Errorf("failed to fill %s: %w", f.selector, err)
		}
	}

	s.Page.WaitForTimeout(500)

	if err := s.Page.GetByText("I have read and agree to the").Click(); err != nil {
		return fmt.Errorf("failed to tick privacy policy: %w", err)
	}
	submit := s.Page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Continue"})
	if err := submit.Click(); err != nil {
		return fmt.Errorf("failed to submit registration: %w", err)
	}

	message := s.Page.Locator(".text-danger").Filter(playwright.LocatorFilterOptions{HasText: FirstNameError})
	if err := s.Expect.Locator(message).ToBeVisible(); err != nil {
		return fmt.Errorf("first name validation message not visible: %w", err)
	}
	return nil
}
