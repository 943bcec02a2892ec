package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmasterhq/flowmaster/internal/config"
	"github.com/flowmasterhq/flowmaster/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewVerifier(t *testing.T) {
	t.Parallel()

	v, err := NewVerifier(config.AuthConfig{Mode: config.AuthModeVerify, Secret: testSecret})
	require.NoError(t, err)
	assert.IsType(t, &HMACVerifier{}, v)

	v, err = NewVerifier(config.AuthConfig{Mode: config.AuthModeTrust})
	require.NoError(t, err)
	assert.IsType(t, &TrustVerifier{}, v)

	_, err = NewVerifier(config.AuthConfig{Mode: "other"})
	require.Error(t, err)
}

func TestHMACVerifier(t *testing.T) {
	t.Parallel()

	verifier := &HMACVerifier{secret: []byte(testSecret)}

	t.Run("valid_token", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":              "5f1b2a48-9c21-4a8f-bb7e-07f3a9c2d101",
			"custom:tenant_id": "acme",
			"custom:role":      "admin",
			"exp":              time.Now().Add(time.Hour).Unix(),
		})

		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "acme", claims.TenantID)
		assert.Equal(t, "5f1b2a48-9c21-4a8f-bb7e-07f3a9c2d101", claims.Subject)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("missing_tenant_claim", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "5f1b2a48-9c21-4a8f-bb7e-07f3a9c2d101",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		claims, err := verifier.Verify(token)
		require.NoError(t, err, "a missing tenant claim is not an auth failure")
		assert.Empty(t, claims.TenantID)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, "another-secret-another-secret-32", jwt.MapClaims{
			"sub": "x",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "x",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		_, err := verifier.Verify("not-a-token")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("alg_none_rejected", func(t *testing.T) {
		t.Parallel()

		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "x",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, verifyErr := verifier.Verify(unsigned)
		require.ErrorIs(t, verifyErr, domain.ErrUnauthorized)
	})
}

func TestTrustVerifier(t *testing.T) {
	t.Parallel()

	verifier := &TrustVerifier{}

	t.Run("decodes_without_signature_check", func(t *testing.T) {
		t.Parallel()

		// Signed with a secret the verifier never sees.
		token := signToken(t, "unknown-secret-unknown-secret-32", jwt.MapClaims{
			"sub":              "user-1",
			"custom:tenant_id": "Acme",
		})

		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "Acme", claims.TenantID)
		assert.Equal(t, "user-1", claims.Subject)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		_, err := verifier.Verify("garbage")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
