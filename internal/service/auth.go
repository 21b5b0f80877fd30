package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// AuthConfig carries the token signing parameters.
type AuthConfig struct {
	AccessSecret   string
	RefreshSecret  string
	AccessTTLDays  int
	RefreshTTLDays int
	BcryptCost     int
}

// AuthService issues and invalidates proof-of-identity tokens. Each
// login creates an access-token row and a refresh-token row; the
// signed JWTs carry the row ids as jti so validation and revocation
// always go through the database state.
type AuthService struct {
	users      UserStore
	tokens     TokenStore
	activities ActivityStore
	cfg        AuthConfig
}

func NewAuthService(users UserStore, tokens TokenStore, activities ActivityStore, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens, activities: activities, cfg: cfg}
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserView is the sanitized user representation returned to clients.
// It never contains the password hash.
type UserView struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"is_active"`
}

// NewUserView sanitizes a user record for responses.
func NewUserView(u model.User) UserView {
	return UserView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
		IsActive:       u.IsActive,
	}
}

// LoginResult bundles the signed token pair and the user summary.
type LoginResult struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         UserView `json:"user"`
}

// Register creates a new user account. A duplicate email maps to
// repository.ErrEmailExists; unknown roles fall back to "user".
func (s *AuthService) Register(ctx context.Context, in RegisterInput, profilePicture *string) (UserView, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return UserView{}, repository.ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return UserView{}, err
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return UserView{}, err
	}
	u, err := s.users.Create(ctx, in.Name, in.Email, hash, role, profilePicture)
	if err != nil {
		return UserView{}, err
	}
	return NewUserView(u), nil
}

// Login verifies credentials and opens a session. An unknown email
// maps to repository.ErrUserNotFound, a hash mismatch to
// ErrWrongPassword. On success both token rows are created, the pair
// is signed and a "login" activity row is appended.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrWrongPassword
	}

	now := time.Now().UTC()
	accessExp := now.Add(time.Duration(s.cfg.AccessTTLDays) * 24 * time.Hour)
	refreshExp := now.Add(time.Duration(s.cfg.RefreshTTLDays) * 24 * time.Hour)

	access, err := s.tokens.CreateAccessToken(ctx, u.ID, accessExp)
	if err != nil {
		return LoginResult{}, err
	}
	refresh, err := s.tokens.CreateRefreshToken(ctx, access.ID, refreshExp)
	if err != nil {
		return LoginResult{}, err
	}

	accessJWT, err := utils.SignAccessToken(s.cfg.AccessSecret, access.ID, u.ID, accessExp)
	if err != nil {
		return LoginResult{}, err
	}
	refreshJWT, err := utils.SignRefreshToken(s.cfg.RefreshSecret, refresh.ID, access.ID, refreshExp)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.activities.Append(ctx, u.ID, model.ActivityLogin, ""); err != nil {
		log.Printf("auth: record login activity for user %d: %v", u.ID, err)
	}

	return LoginResult{AccessToken: accessJWT, RefreshToken: refreshJWT, User: NewUserView(u)}, nil
}

// Validate resolves a decoded access-token payload to a user. The
// user must still exist, and the backing access-token row must be
// neither revoked nor past its expiry.
func (s *AuthService) Validate(ctx context.Context, jti string, userID uint64) (model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	t, err := s.tokens.GetAccessToken(ctx, jti)
	if err != nil {
		return model.User{}, err
	}
	if t.IsRevoked || time.Now().UTC().After(t.ExpiresAt) {
		return model.User{}, ErrSessionRevoked
	}
	return u, nil
}

// Logout revokes the user's current session: the active access token
// and, through the same transaction, its refresh token. When no
// active token exists (e.g. a second logout) it returns
// repository.ErrTokenNotFound.
func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	t, err := s.tokens.FindActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.tokens.RevokeSession(ctx, t.ID)
}
