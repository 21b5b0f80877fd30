package service

import (
	"context"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// UserService serves profile reads/updates and the admin user
// listing and deactivation operations.
type UserService struct {
	users      UserStore
	bcryptCost int
}

func NewUserService(users UserStore, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// GetProfile returns the sanitized profile of a user.
func (s *UserService) GetProfile(ctx context.Context, userID uint64) (UserView, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return UserView{}, err
	}
	return NewUserView(u), nil
}

// ProfileUpdate carries a user's own profile changes. A non-nil
// Password is hashed before it reaches the store.
type ProfileUpdate struct {
	Name           *string
	Email          *string
	Password       *string
	ProfilePicture *string
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, in ProfileUpdate) error {
	patch := model.ProfilePatch{
		Name:           in.Name,
		Email:          in.Email,
		ProfilePicture: in.ProfilePicture,
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		patch.PasswordHash = &hash
	}
	return s.users.UpdateProfile(ctx, userID, patch)
}

// List returns all users, sanitized. Admin only at the route level.
func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserView(u))
	}
	return out, nil
}

// Deactivate disables a user account. Admin accounts cannot be
// deactivated; user rows are never deleted.
func (s *UserService) Deactivate(ctx context.Context, userID uint64) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Role == model.RoleAdmin {
		return ErrCannotDeactivateAdmin
	}
	return s.users.Deactivate(ctx, userID)
}
