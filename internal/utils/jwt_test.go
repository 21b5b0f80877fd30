package utils

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	raw, err := SignAccessToken("secret", "row-id-123", 42, exp)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	jti, userID, err := ParseAccessToken("secret", raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if jti != "row-id-123" {
		t.Errorf("jti = %q, want %q", jti, "row-id-123")
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := SignAccessToken("secret", "row-id", 42, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := ParseAccessToken("other-secret", raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret err = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	raw, err := SignAccessToken("secret", "row-id", 42, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := ParseAccessToken("secret", raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token err = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, _, err := ParseAccessToken("secret", raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseAccessToken(%q) err = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestRefreshTokenUsesOwnSecret(t *testing.T) {
	raw, err := SignRefreshToken("refresh-secret", "refresh-row", "access-row", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}
	// A refresh token must not parse as an access token under the
	// access secret.
	if _, _, err := ParseAccessToken("access-secret", raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("cross-secret parse err = %v, want ErrInvalidToken", err)
	}
}
