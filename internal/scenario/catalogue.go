package scenario

// Literal inputs and expectations shared by the scenarios.
const (
	InvalidPassword  = "invalidpassword123"
	UnknownEmail     = "nonexistent1@example.com"
	NoMatchWarning   = "Warning: No match for E-Mail Address and/or Password."
	FirstNameError   = "First Name must be between 1 and 32 characters!"
	SearchTerm       = "nikon"
	SearchHits       = 2
	CartProductID    = "31"
	CartProductGrid  = "#mz-product-grid-image-31-212469"
	CartAddedSuccess = "Success: You have added a product to your shopping cart!"
)

// Catalogue returns the ten storefront scenarios in execution order.
func Catalogue() []Scenario {
	return []Scenario{
		{ID: "TC001", Title: "TC001 - Should verify the page title is correct", Body: verifyPageTitle},
		{ID: "TC002", Title: "TC002 - Should verify if login page elements are visible", Body: verifyLoginElements},
		{ID: "TC003", Title: "TC003 - Should successfully log in with valid credentials", Body: loginWithValidCredentials},
		{ID: "TC004", Title: "TC004 - Should show error message for invalid password", Body: loginWithInvalidPassword},
		{ID: "TC005", Title: "TC005 - Should show error message for invalid email", Body: loginWithUnknownEmail},
		{ID: "TC006", Title: "TC006 - Should navigate to the registration page", Body: openRegistration},
		{ID: "TC007", Title: "TC007 - Should show error for missing first name during registration", Body: registerWithMissingName},
		{ID: "TC008", Title: "TC008 - Should successfully search for a product", Body: searchForProduct},
		{ID: "TC009", Title: "TC009 - Should add a product to the cart", Body: addProductToCart},
		{ID: "TC010", Title: "TC010 - Should navigate to the Specials page", Body: openSpecials},
	}
}
