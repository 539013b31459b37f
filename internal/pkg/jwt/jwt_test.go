package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_32_characters_min"

func newTestService() *Service {
	return New(testSecret, 15*time.Minute, "petcare-api", "petcare-app")
}

func TestSignAndVerify(t *testing.T) {
	svc := newTestService()

	token, err := svc.Sign(42, "user")
	require.NoError(t, err)

	userID, role, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "user", role)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := newTestService().Sign(1, "user")
	require.NoError(t, err)

	other := New("another_secret_key_32_chars_long!", 15*time.Minute, "petcare-api", "petcare-app")
	_, _, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	bad := New(testSecret, 15*time.Minute, "someone-else", "petcare-app")
	token, err := bad.Sign(1, "user")
	require.NoError(t, err)

	_, _, err = newTestService().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongAudience(t *testing.T) {
	bad := New(testSecret, 15*time.Minute, "petcare-api", "other-app")
	token, err := bad.Sign(1, "user")
	require.NoError(t, err)

	_, _, err = newTestService().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	expired := New(testSecret, -time.Minute, "petcare-api", "petcare-app")
	token, err := expired.Sign(1, "user")
	require.NoError(t, err)

	_, _, err = newTestService().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Tampered(t *testing.T) {
	svc := newTestService()
	token, err := svc.Sign(1, "user")
	require.NoError(t, err)

	tampered := token[:len(token)-3] + "xyz"
	_, _, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_AlgorithmPinned(t *testing.T) {
	// A token signed with 'none' must be rejected outright.
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "1",
			Issuer:    "petcare-api",
			Audience:  jwtlib.ClaimStrings{"petcare-app"},
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = newTestService().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingExpiry(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:  "1",
			Issuer:   "petcare-api",
			Audience: jwtlib.ClaimStrings{"petcare-app"},
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = newTestService().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
