package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers bad signatures, foreign algorithms, malformed
	// input, a missing exp and a typ other than "access".
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned once now >= exp.
	ErrExpiredToken = errors.New("token expired")

	// ErrReservedClaim is returned when extra claims try to set sub, iat, exp or typ.
	ErrReservedClaim = errors.New("reserved claim")

	// ErrUnsupportedClaim is returned for extra claim values outside the allowed types.
	ErrUnsupportedClaim = errors.New("unsupported claim value")
)

// TokenConfig is the signing configuration, built once at startup.
type TokenConfig struct {
	Secret    []byte
	Algorithm string
	Expiry    time.Duration
}

// TokenService issues and verifies HMAC-signed access tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService validates cfg and returns a ready TokenService.
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if cfg.Expiry <= 0 {
		return nil, fmt.Errorf("token expiry must be positive, got %s", cfg.Expiry)
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	s := &TokenService{
		secret: secret,
		method: method,
		expiry: cfg.Expiry,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	return s, nil
}

// Expiry returns the lifetime of issued tokens.
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue signs a token for subject. Reserved claims are set after the
// extras are merged, and extras naming them are rejected outright.
func (s *TokenService) Issue(subject string, extra ExtraClaims) (string, error) {
	if err := extra.validate(); err != nil {
		return "", err
	}

	now := s.now()
	claims := jwt.MapClaims{}
	for key, value := range extra {
		claims[key] = value
	}
	claims[ClaimSubject] = subject
	claims[ClaimIssuedAt] = now.Unix()
	claims[ClaimExpiresAt] = now.Add(s.expiry).Unix()
	claims[ClaimType] = AccessTokenType

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm and expiry of token and returns its claims.
func (s *TokenService) Verify(token string) (Claims, error) {
	mapClaims := jwt.MapClaims{}
	parsed, err := s.parser.ParseWithClaims(token, mapClaims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	if typ, _ := mapClaims[ClaimType].(string); typ != AccessTokenType {
		return Claims{}, fmt.Errorf("%w: unexpected token type", ErrInvalidToken)
	}

	out := Claims{
		Type:  AccessTokenType,
		Extra: make(map[string]any, len(mapClaims)),
	}
	out.Subject, _ = mapClaims[ClaimSubject].(string)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	for key, value := range mapClaims {
		if !reservedClaims[key] {
			out.Extra[key] = value
		}
	}
	return out, nil
}
