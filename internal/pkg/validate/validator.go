// internal/pkg/validate/validator.go
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Stateless input validation for the checkout flow. Outcomes are reported as
// flags and field error maps rather than errors, because invalid input is an
// expected branch of normal traffic and the caller decides the fallback path.

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
)

// Form field keys used in the error map returned by ValidateForm.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldCityRegion = "city_region"
	FieldCardNumber = "card_number"
)

// CheckoutForm carries the transient user input collected on the checkout
// page. It is validated and handed off to the order manager, never persisted
// here.
type CheckoutForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CityRegion string `json:"city_region"`
	CardNumber string `json:"card_number"`
}

// ValidateQuantity reports whether a cart update request is invalid: an
// empty or unparseable product id, or a quantity that is empty, non-numeric
// or negative.
func ValidateQuantity(productID, quantity string) bool {
	if productID == "" || quantity == "" {
		return true
	}
	if _, err := strconv.ParseUint(productID, 10, 32); err != nil {
		return true
	}
	parsed, err := strconv.Atoi(quantity)
	if err != nil || parsed < 0 {
		return true
	}
	return false
}

// ValidateForm checks every checkout field and collects all failures so the
// user sees every problem at once instead of just the first. It returns true
// if any field failed, plus a message per failed field.
//
// The card number gets a format check only. The storefront never processes
// real payments, so there is no Luhn or issuer validation.
func ValidateForm(form CheckoutForm) (bool, map[string]string) {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(form.Name) == "" {
		fieldErrors[FieldName] = "name is required"
	}

	if form.Email == "" {
		fieldErrors[FieldEmail] = "email is required"
	} else if !emailPattern.MatchString(form.Email) {
		fieldErrors[FieldEmail] = "email address is not valid"
	}

	if form.Phone == "" {
		fieldErrors[FieldPhone] = "phone is required"
	} else if !validPhone(form.Phone) {
		fieldErrors[FieldPhone] = "phone number is not valid"
	}

	if strings.TrimSpace(form.Address) == "" {
		fieldErrors[FieldAddress] = "address is required"
	}

	if strings.TrimSpace(form.CityRegion) == "" {
		fieldErrors[FieldCityRegion] = "city/region is required"
	}

	if form.CardNumber == "" {
		fieldErrors[FieldCardNumber] = "card number is required"
	} else if !validCardNumber(form.CardNumber) {
		fieldErrors[FieldCardNumber] = "card number is not valid"
	}

	return len(fieldErrors) > 0, fieldErrors
}

// validPhone accepts common formatting (spaces, dots, dashes, parentheses)
// around 7 to 15 digits.
func validPhone(phone string) bool {
	digits := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-', '(', ')', '+':
			return -1
		}
		return r
	}, phone)

	if !digitsOnly.MatchString(digits) {
		return false
	}
	return len(digits) >= 7 && len(digits) <= 15
}

// validCardNumber accepts 13 to 19 digits with optional spaces or dashes.
// Format check only.
func validCardNumber(cardNumber string) bool {
	digits := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-':
			return -1
		}
		return r
	}, cardNumber)

	if !digitsOnly.MatchString(digits) {
		return false
	}
	return len(digits) >= 13 && len(digits) <= 19
}
