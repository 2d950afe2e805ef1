package security

import (
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters (runes) a password must have.
const MinPasswordLength = 12

// PasswordPolicyMessage is the caller-facing description of the password rule.
const PasswordPolicyMessage = "Password does not meet policy requirements."

// ValidatePassword reports whether password satisfies the complexity rule:
// at least MinPasswordLength characters with an ASCII uppercase letter, an
// ASCII lowercase letter, a digit and a character outside [A-Za-z0-9].
func ValidatePassword(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			// Anything outside [A-Za-z0-9] is a symbol, non-ASCII digits included.
			hasSymbol = true
			if unicode.IsDigit(r) {
				hasDigit = true
			}
		}
	}

	return hasUpper && hasLower && hasDigit && hasSymbol
}
