package utils // package utils provides helper functions for token signing and parsing

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned when a token fails signature or claim
// validation.
var ErrInvalidToken = errors.New("invalid token")

// SignAccessToken builds and signs an HS256 JWT identifying a user
// session. The jti claim carries the access_tokens row id and sub
// carries the user id, so per-request validation can cross-check the
// DB-side revocation state.
func SignAccessToken(secret, jti string, userID uint64, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"jti": jti,
		"sub": userID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// SignRefreshToken builds and signs an HS256 JWT for the renewal
// flow. The jti claim carries the refresh_tokens row id and sub the
// access token the refresh token belongs to. A separate secret keeps
// the two token kinds non-interchangeable.
func SignRefreshToken(secret, jti, accessTokenID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"jti": jti,
		"sub": accessTokenID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAccessToken verifies an access token string and extracts the
// jti (access token row id) and sub (user id) claims. Only HMAC
// signatures are accepted; anything else is rejected.
func ParseAccessToken(secret, raw string) (jti string, userID uint64, err error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, ErrInvalidToken
	}
	jti, _ = claims["jti"].(string)
	switch sub := claims["sub"].(type) {
	case float64:
		// Numeric claims decode as float64.
		userID = uint64(sub)
	case string:
		if n, perr := strconv.ParseUint(sub, 10, 64); perr == nil {
			userID = n
		}
	}
	if jti == "" || userID == 0 {
		return "", 0, ErrInvalidToken
	}
	return jti, userID, nil
}
