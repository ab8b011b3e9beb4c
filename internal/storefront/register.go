package storefront

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Registration is the submitted register form
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Password  string
	Confirm   string
	Agree     bool
}

// Validation messages shown next to register form fields.
const (
	MsgFirstName = "First Name must be between 1 and 32 characters!"
	MsgLastName  = "Last Name must be between 1 and 32 characters!"
	MsgEmail     = "E-Mail Address does not appear to be valid!"
	MsgTelephone = "Telephone must be between 3 and 32 characters!"
	MsgPassword  = "Password must be between 4 and 20 characters!"
	MsgConfirm   = "Password confirmation does not match password!"
	MsgAgree     = "Warning: You must agree to the Privacy Policy!"
	MsgEmailUsed = "Warning: E-Mail Address is already registered!"
)

// FieldErrors maps a form field name to its validation message
type FieldErrors map[string]string

// Validate checks the form the way the storefront does. The agreement
// warning is returned separately because it renders as a page alert.
func (r Registration) Validate() (FieldErrors, string) {
	errs := FieldErrors{}

	if !between(r.FirstName, 1, 32) {
		errs["firstname"] = MsgFirstName
	}
	if !between(r.LastName, 1, 32) {
		errs["lastname"] = MsgLastName
	}
	if !validEmail(r.Email) {
		errs["email"] = MsgEmail
	}
	if !between(r.Telephone, 3, 32) {
		errs["telephone"] = MsgTelephone
	}
	if !between(r.Password, 4, 20) {
		errs["password"] = MsgPassword
	}
	if r.Confirm != r.Password {
		errs["confirm"] = MsgConfirm
	}

	warning := ""
	if !r.Agree {
		warning = MsgAgree
	}
	return errs, warning
}

func between(value string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	return n >= min && n <= max
}

func validEmail(value string) bool {
	if len(value) > 96 {
		return false
	}
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}
