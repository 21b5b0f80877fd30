package model

import "time"

// AccessToken models a row in the `access_tokens` table. The row is
// the source of truth for whether a bearer token is still valid: the
// signed JWT carries the row ID as its jti claim, and validation
// cross-checks IsRevoked and ExpiresAt against this record.
//
// Fields:
//  ID        – UUID primary key, embedded in the JWT as jti.
//  UserID    – owner of the session.
//  IsRevoked – set to true on logout; terminal.
//  ExpiresAt – passive expiry checked at use time.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type AccessToken struct {
	ID        string    // access_tokens.id (uuid)
	UserID    uint64    // access_tokens.user_id
	IsRevoked bool      // access_tokens.is_revoked
	ExpiresAt time.Time // access_tokens.expires_at
	CreatedAt time.Time // access_tokens.created_at
	UpdatedAt time.Time // access_tokens.updated_at
}

// RefreshToken models a row in the `refresh_tokens` table. Each
// refresh token is tied to the access token that spawned it; revoking
// the access token cascades a revoke to its refresh token.
//
// Fields:
//  ID            – UUID primary key, embedded in the refresh JWT as jti.
//  AccessTokenID – access token this refresh token belongs to.
//  IsRevoked     – set alongside the access token's flag on logout.
//  ExpiresAt     – passive expiry checked at use time.
//  CreatedAt     – timestamp of creation.
type RefreshToken struct {
	ID            string    // refresh_tokens.id (uuid)
	AccessTokenID string    // refresh_tokens.access_token_id
	IsRevoked     bool      // refresh_tokens.is_revoked
	ExpiresAt     time.Time // refresh_tokens.expires_at
	CreatedAt     time.Time // refresh_tokens.created_at
}
