package scenario

import (
	"fmt"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

var (
	searchResultURL = regexp.MustCompile(`search=` + SearchTerm)
	specialPageURL  = regexp.MustCompile(`information/special`)
)

func searchForProduct(s *Session) error {
	home := s.Config.PageURL("common/home")
	if _, err := s.Page.Goto(home); err != nil {
		return fmt.Errorf("failed to open home page: %w", err)
	}

	search := s.Page.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: "Search For Products"})
	if err := search.Fill(SearchTerm); err != nil {
		return fmt.Errorf("failed to fill search box: %w", err)
	}
	if err := s.Page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: "Search"}).Click(); err != nil {
		return fmt.Errorf("failed to click Search: %w", err)
	}

	if err := s.Expect.Page(s.Page).ToHaveURL(searchResultURL); err != nil {
		return fmt.Errorf("search url: %w", err)
	}
	// Exact count of the live catalogue's matches.
	if err := s.Expect.Locator(s.Page.Locator(".product-layout")).ToHaveCount(SearchHits); err != nil {
		return fmt.Errorf("search results: %w", err)
	}
	return nil
}

func addProductToCart(s *Session) error {
	product := s.Config.PageURL("product/product", "product_id", CartProductID)
	if _, err := s.Page.Goto(product); err != nil {
		return fmt.Errorf("failed to open product page: %w", err)
	}
	s.Page.WaitForTimeout(500)

	if err := s.Page.Locator(CartProductGrid).Hover(); err != nil {
		return fmt.Errorf("failed to hover product image: %w", err)
	}
	addToCart := s.Page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: ""}).First()
	if err := addToCart.Click(); err != nil {
		return fmt.Errorf("failed to click add to cart: %w", err)
	}

	if err := s.Expect.Locator(s.Page.Locator(".alert-success")).ToContainText(CartAddedSuccess); err != nil {
		return fmt.Errorf("cart confirmation: %w", err)
	}
	return nil
}

func openSpecials(s *Session) error {
	link := s.Page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{
		Name:  "Special Hot",
		Exact: playwright.Bool(true),
	})
	if err := link.Click(); err != nil {
		return fmt.Errorf("failed to click Special Hot: %w", err)
	}
	if err := s.Expect.Page(s.Page).ToHaveURL(specialPageURL); err != nil {
		return fmt.Errorf("not on specials page: %w", err)
	}
	if err := s.Expect.Locator(s.Page.Locator(`h1:has-text("Special Offers")`)).ToBeVisible(); err != nil {
		return fmt.Errorf("Special Offers heading not visible: %w", err)
	}
	return nil
}
