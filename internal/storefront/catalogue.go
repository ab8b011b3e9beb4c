package storefront

import "fmt"

// ProductGridModuleID is the module instance id the storefront renders into
// product grid element ids (mz-product-grid-image-<product>-<module>).
const ProductGridModuleID = 212469

// DefaultCatalogue mirrors the playground's demo inventory closely enough for
// the scenarios: exactly two products match "nikon" and a handful carry specials.
func DefaultCatalogue() []Product {
	return []Product{
		{ID: 28, Name: "HTC Touch HD", Model: "Product 1", Price: "$146.00", Special: "$120.00"},
		{ID: 29, Name: "Palm Treo Pro", Model: "Product 2", Price: "$337.99"},
		{ID: 30, Name: "Canon EOS 5D", Model: "Product 3", Price: "$134.00", Special: "$98.00"},
		{ID: 31, Name: "Nikon D300", Model: "Product 4", Price: "$98.00"},
		{ID: 32, Name: "iPod Touch", Model: "Product 5", Price: "$194.00"},
		{ID: 33, Name: "Samsung SyncMaster 941BW", Model: "Product 6", Price: "$242.00"},
		{ID: 40, Name: "iPhone", Model: "product 11", Price: "$123.20"},
		{ID: 43, Name: "MacBook", Model: "Product 16", Price: "$602.00", Special: "$500.00"},
		{ID: 46, Name: "Nikon D7000", Model: "SAM1", Price: "$1,000.00"},
		{ID: 47, Name: "HP LP3065", Model: "Product 21", Price: "$122.00"},
	}
}

// Seed loads the default catalogue and, when email is set, the test account.
func Seed(store *Store, firstName, lastName, email, password string) error {
	for _, p := range DefaultCatalogue() {
		store.AddProduct(p)
	}
	if email == "" {
		return nil
	}
	account := Account{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Telephone: "1234567890",
	}
	if err := store.Register(account, password); err != nil {
		return fmt.Errorf("failed to seed account %s: %w", email, err)
	}
	return nil
}
