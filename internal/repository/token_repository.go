package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// TokenRepo persists access/refresh token metadata. The UUID primary
// keys double as the jti claims of the signed JWTs, so a bearer token
// can always be traced back to its row.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// CreateAccessToken inserts an access token row for a user and
// returns it with a freshly generated UUID id.
func (r *TokenRepo) CreateAccessToken(ctx context.Context, userID uint64, expiresAt time.Time) (model.AccessToken, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO access_tokens (id, user_id, is_revoked, expires_at) VALUES (?,?,0,?)",
		id, userID, expiresAt)
	if err != nil {
		return model.AccessToken{}, err
	}
	return model.AccessToken{ID: id, UserID: userID, ExpiresAt: expiresAt}, nil
}

// CreateRefreshToken inserts a refresh token row tied to an access
// token and returns it.
func (r *TokenRepo) CreateRefreshToken(ctx context.Context, accessTokenID string, expiresAt time.Time) (model.RefreshToken, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (id, access_token_id, is_revoked, expires_at) VALUES (?,?,0,?)",
		id, accessTokenID, expiresAt)
	if err != nil {
		return model.RefreshToken{}, err
	}
	return model.RefreshToken{ID: id, AccessTokenID: accessTokenID, ExpiresAt: expiresAt}, nil
}

// GetAccessToken fetches an access token row by id (jti).
func (r *TokenRepo) GetAccessToken(ctx context.Context, id string) (model.AccessToken, error) {
	var t model.AccessToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,is_revoked,expires_at,created_at,updated_at FROM access_tokens WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.UserID, &t.IsRevoked, &t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AccessToken{}, ErrTokenNotFound
	}
	return t, err
}

// FindActiveByUser returns the user's current non-revoked access
// token, newest first when several exist. ErrTokenNotFound is
// returned when the user has no active session.
func (r *TokenRepo) FindActiveByUser(ctx context.Context, userID uint64) (model.AccessToken, error) {
	var t model.AccessToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,is_revoked,expires_at,created_at,updated_at FROM access_tokens WHERE user_id=? AND is_revoked=0 ORDER BY created_at DESC LIMIT 1",
		userID).Scan(&t.ID, &t.UserID, &t.IsRevoked, &t.ExpiresAt, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AccessToken{}, ErrTokenNotFound
	}
	return t, err
}

// RevokeSession marks an access token and its refresh token revoked
// inside one transaction, so a session is never left half-closed.
func (r *TokenRepo) RevokeSession(ctx context.Context, accessTokenID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		"UPDATE access_tokens SET is_revoked=1 WHERE id=?", accessTokenID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE refresh_tokens SET is_revoked=1 WHERE access_token_id=?", accessTokenID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
