package security

import (
	"fmt"
	"time"
)

// AccessTokenType is the typ claim stamped on every issued token.
const AccessTokenType = "access"

// Reserved claim names. The token service always sets these itself.
const (
	ClaimSubject   = "sub"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
	ClaimType      = "typ"

	ClaimRole  = "role"
	ClaimEmail = "email"
)

var reservedClaims = map[string]bool{
	ClaimSubject:   true,
	ClaimIssuedAt:  true,
	ClaimExpiresAt: true,
	ClaimType:      true,
}

// ExtraClaims are caller-supplied claims embedded next to the reserved ones.
// Values must be string, int, int64 or bool.
type ExtraClaims map[string]any

func (e ExtraClaims) validate() error {
	for key, value := range e {
		if reservedClaims[key] {
			return fmt.Errorf("%w: %q", ErrReservedClaim, key)
		}
		switch value.(type) {
		case string, int, int64, bool:
		default:
			return fmt.Errorf("%w: %q has type %T", ErrUnsupportedClaim, key, value)
		}
	}
	return nil
}

// Claims is the decoded claim set of a verified token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Type      string
	Extra     map[string]any
}

// String returns the extra claim key when it holds a string.
func (c Claims) String(key string) (string, bool) {
	v, ok := c.Extra[key].(string)
	return v, ok
}

// Role returns the role claim, or "" when absent.
func (c Claims) Role() string {
	role, _ := c.String(ClaimRole)
	return role
}

// Email returns the email claim, or "" when absent.
func (c Claims) Email() string {
	email, _ := c.String(ClaimEmail)
	return email
}
