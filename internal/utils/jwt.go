package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel error for failed verification
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned by VerifyAccessToken when the token cannot be
// parsed, carries a wrong signature or algorithm, or has expired. Callers
// translate it into a 401 response.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT bearer token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. The token is sent in the Authorization header
// when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, the user's role, and a TTL in days. The JWT
// includes standard claims: subject (sub), role, expiration (exp) and
// issued at (iat).
func NewAccessToken(secret string, userID uint64, role string, ttlDays int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a bearer token string and returns
// the subject user ID and role claim. Only HMAC-signed tokens are accepted;
// anything else, including expired tokens, yields ErrInvalidToken.
func VerifyAccessToken(secret, raw string) (uint64, string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	// Numeric claims decode as float64 out of encoding/json.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return uint64(sub), role, nil
}
