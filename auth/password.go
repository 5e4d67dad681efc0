package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/go-faster/errors"
)

const (
	MinPasswordLength = 6
	passwordSymbols   = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

var (
	ErrPasswordTooShort    = errors.New("Password must be at least 6 characters")
	ErrPasswordNoLowercase = errors.New("Password must contain lowercase letters")
	ErrPasswordNoUppercase = errors.New("Password must contain uppercase letters")
	ErrPasswordNoDigit     = errors.New("Password must contain digits")
	ErrPasswordNoSymbol    = errors.New("Password must contain special symbols (!@#$%^&* etc.)")
)

// PasswordRules reports which requirements a password meets, for a live
// checklist next to the password field.
type PasswordRules struct {
	MinLength    bool `json:"min_length"`
	HasLowercase bool `json:"has_lowercase"`
	HasUppercase bool `json:"has_uppercase"`
	HasDigit     bool `json:"has_digit"`
	HasSymbol    bool `json:"has_symbol"`
}

func CheckPassword(password string) PasswordRules {
	r := PasswordRules{MinLength: utf8.RuneCountInString(password) >= MinPasswordLength}
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			r.HasLowercase = true
		case c >= 'A' && c <= 'Z':
			r.HasUppercase = true
		case c >= '0' && c <= '9':
			r.HasDigit = true
		case strings.ContainsRune(passwordSymbols, c):
			r.HasSymbol = true
		}
	}
	return r
}

func (r PasswordRules) Valid() bool {
	return r.MinLength && r.HasLowercase && r.HasUppercase && r.HasDigit && r.HasSymbol
}

// Err returns the first unmet rule, checked in the order the form lists them.
func (r PasswordRules) Err() error {
	switch {
	case !r.MinLength:
		return ErrPasswordTooShort
	case !r.HasLowercase:
		return ErrPasswordNoLowercase
	case !r.HasUppercase:
		return ErrPasswordNoUppercase
	case !r.HasDigit:
		return ErrPasswordNoDigit
	case !r.HasSymbol:
		return ErrPasswordNoSymbol
	}
	return nil
}

// ValidatePassword is CheckPassword(password).Err().
func ValidatePassword(password string) error {
	return CheckPassword(password).Err()
}
