package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	access, err := NewAccessToken("secret", 42, "admin", 7)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), access.Exp, time.Minute)

	uid, role, err := VerifyAccessToken("secret", access.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
	assert.Equal(t, "admin", role)
}

func TestVerifyAccessTokenWrongSecret(t *testing.T) {
	access, err := NewAccessToken("secret", 1, "admin", 1)
	require.NoError(t, err)

	_, _, err = VerifyAccessToken("other-secret", access.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  float64(1),
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, _, err = VerifyAccessToken("secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessTokenRejectsNonHMAC(t *testing.T) {
	// alg=none tokens must never validate.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": float64(1), "role": "admin",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = VerifyAccessToken("secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	_, _, err := VerifyAccessToken("secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
