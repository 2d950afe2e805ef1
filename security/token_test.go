package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTokenService(t *testing.T, expiry time.Duration, clock *fakeClock) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{
		Secret:    testSecret,
		Algorithm: "HS256",
		Expiry:    expiry,
	}, WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TokenConfig
		wantErr bool
	}{
		{"valid", TokenConfig{Secret: testSecret, Algorithm: "HS256", Expiry: time.Minute}, false},
		{"default algorithm", TokenConfig{Secret: testSecret, Expiry: time.Minute}, false},
		{"HS512", TokenConfig{Secret: testSecret, Algorithm: "HS512", Expiry: time.Minute}, false},
		{"missing secret", TokenConfig{Algorithm: "HS256", Expiry: time.Minute}, true},
		{"asymmetric algorithm", TokenConfig{Secret: testSecret, Algorithm: "RS256", Expiry: time.Minute}, true},
		{"none algorithm", TokenConfig{Secret: testSecret, Algorithm: "none", Expiry: time.Minute}, true},
		{"zero expiry", TokenConfig{Secret: testSecret, Algorithm: "HS256"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewTokenService(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Expiry, svc.Expiry())
		})
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newTestTokenService(t, 15*time.Minute, clock)

	token, err := svc.Issue("user-123", ExtraClaims{"role": "admin"})
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "admin", claims.Role())
	assert.Equal(t, AccessTokenType, claims.Type)
	assert.True(t, claims.ExpiresAt.Equal(clock.now.Add(15*time.Minute)))
	assert.True(t, claims.IssuedAt.Equal(clock.now))
	assert.NotContains(t, claims.Extra, "sub")
}

func TestTokenService_ExtraClaims(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestTokenService(t, time.Minute, clock)

	t.Run("all supported value types", func(t *testing.T) {
		token, err := svc.Issue("7", ExtraClaims{
			"email":  "admin@example.com",
			"tenant": int64(3),
			"level":  2,
			"mfa":    true,
		})
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", claims.Email())
		assert.Equal(t, float64(3), claims.Extra["tenant"])
		assert.Equal(t, true, claims.Extra["mfa"])
	})

	t.Run("reserved claims cannot be overridden", func(t *testing.T) {
		for _, key := range []string{"sub", "iat", "exp", "typ"} {
			_, err := svc.Issue("7", ExtraClaims{key: "smuggled"})
			assert.ErrorIs(t, err, ErrReservedClaim, key)
		}
	})

	t.Run("unsupported value type", func(t *testing.T) {
		_, err := svc.Issue("7", ExtraClaims{"scopes": []string{"a"}})
		assert.ErrorIs(t, err, ErrUnsupportedClaim)
	})

	t.Run("nil extras", func(t *testing.T) {
		token, err := svc.Issue("7", nil)
		require.NoError(t, err)
		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "7", claims.Subject)
		assert.Empty(t, claims.Role())
	})
}

func TestTokenService_Expiry(t *testing.T) {
	t.Run("expired after lifetime elapses", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		svc := newTestTokenService(t, 2*time.Second, clock)

		token, err := svc.Issue("user-123", nil)
		require.NoError(t, err)

		clock.Advance(3 * time.Second)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired exactly at exp", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		svc := newTestTokenService(t, 2*time.Second, clock)

		token, err := svc.Issue("user-123", nil)
		require.NoError(t, err)

		clock.Advance(2 * time.Second)
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("valid just before exp", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		svc := newTestTokenService(t, 2*time.Second, clock)

		token, err := svc.Issue("user-123", nil)
		require.NoError(t, err)

		clock.Advance(time.Second)
		_, err = svc.Verify(token)
		assert.NoError(t, err)
	})
}

func TestTokenService_InvalidTokens(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestTokenService(t, time.Minute, clock)

	valid, err := svc.Issue("1", nil)
	require.NoError(t, err)

	other, err := NewTokenService(TokenConfig{Secret: []byte("other-secret"), Expiry: time.Minute})
	require.NoError(t, err)
	foreign, err := other.Issue("1", nil)
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "1", "typ": "access", "exp": clock.now.Add(time.Minute).Unix(),
	})
	wrongAlg, err := hs512.SignedString(testSecret)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "typ": "access",
	}).SignedString(testSecret)
	require.NoError(t, err)

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "typ": "refresh", "exp": clock.now.Add(time.Minute).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "typ": "access", "exp": clock.now.Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered payload", tampered},
		{"signed with another secret", foreign},
		{"different algorithm", wrongAlg},
		{"alg none", unsigned},
		{"missing exp", noExp},
		{"wrong type", refresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
