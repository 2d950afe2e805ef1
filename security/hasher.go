package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used by NewHasher.
const DefaultHashCost = 12

var (
	// ErrPolicyViolation is returned when a password fails ValidatePassword.
	ErrPolicyViolation = errors.New(PasswordPolicyMessage)

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// Hasher hashes and verifies credentials with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using DefaultHashCost.
func NewHasher() *Hasher {
	return &Hasher{cost: DefaultHashCost}
}

// NewHasherWithCost returns a Hasher with an explicit bcrypt cost.
func NewHasherWithCost(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// Cost returns the configured bcrypt work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash validates password against the policy and returns its bcrypt hash.
// Each call uses a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	if !ValidatePassword(password) {
		return "", ErrPolicyViolation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Empty input, a malformed
// hash and a mismatch all yield false.
func (h *Hasher) Verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
