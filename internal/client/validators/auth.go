// Package validators checks outgoing data against the entity invariants before
// it reaches the network. Every failure is a *common.ValidationError.
package validators

import (
	"regexp"
	"unicode"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

const (
	MsgInvalidEmail   = "Invalid email address."
	MsgWeakPassword   = "Password must be at least 8 characters long and contain only letters and digits, with at least one uppercase letter, one lowercase letter and one digit."
	minPasswordLength = 8
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the address has the local@domain.tld shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return common.NewValidationError("email", MsgInvalidEmail)
	}
	return nil
}

// ValidatePassword requires at least 8 ASCII letters or digits including an
// uppercase letter, a lowercase letter and a digit.
func ValidatePassword(password string) error {
	var hasLower, hasUpper, hasDigit bool
	n := 0
	for _, r := range password {
		n++
		switch {
		case r > unicode.MaxASCII:
			return common.NewValidationError("password", MsgWeakPassword)
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return common.NewValidationError("password", MsgWeakPassword)
		}
	}
	if n < minPasswordLength || !hasLower || !hasUpper || !hasDigit {
		return common.NewValidationError("password", MsgWeakPassword)
	}
	return nil
}

// ValidateCredentials runs the email check first, then the password check.
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
