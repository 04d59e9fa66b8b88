package security

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrWeakPassword classifies password-policy failures. Concrete errors wrap it
// and name the violated rule; test with errors.Is.
var ErrWeakPassword = errors.New("weak password")

// ErrPasswordMismatch is returned when the confirmation does not exactly match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// passwordSymbols is the accepted punctuation/symbol set.
const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// ValidatePassword checks the password acceptance policy: minimum 8
// characters, at least one uppercase letter, one digit, and one symbol from
// the accepted set. Returns an error wrapping ErrWeakPassword that names the
// first violated rule.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrWeakPassword)
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("%w: must contain at least one uppercase letter", ErrWeakPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: must contain at least one digit", ErrWeakPassword)
	}
	if !hasSymbol {
		return fmt.Errorf("%w: must contain at least one special character", ErrWeakPassword)
	}
	return nil
}

// ValidatePasswordConfirmation checks the policy and that confirm matches
// password exactly. Mismatch is checked first, before strength.
func ValidatePasswordConfirmation(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return ValidatePassword(password)
}
