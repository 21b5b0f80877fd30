package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

func TestUpdateProfileHashesPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, bcrypt.MinCost)
	ctx := context.Background()

	u, _ := users.Create(ctx, "Alice", "alice@example.com", "oldhash", model.RoleUser, nil)

	pw := "new-password"
	name := "Alice B"
	if err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Name: &name, Password: &pw}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	stored, _ := users.GetByID(ctx, u.ID)
	if stored.Name != name {
		t.Errorf("name = %q, want %q", stored.Name, name)
	}
	if stored.PasswordHash == pw {
		t.Fatal("password stored in plain text")
	}
	if !utils.VerifyPassword(stored.PasswordHash, pw) {
		t.Fatal("stored hash does not verify against the new password")
	}
}

func TestGetProfileSanitized(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, bcrypt.MinCost)
	ctx := context.Background()

	u, _ := users.Create(ctx, "Bob", "bob@example.com", "hash", model.RoleUser, nil)

	view, err := svc.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if view.Email != "bob@example.com" || view.ID != u.ID {
		t.Errorf("view = %+v", view)
	}

	if _, err := svc.GetProfile(ctx, 999); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("missing profile err = %v, want ErrUserNotFound", err)
	}
}

func TestDeactivate(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, bcrypt.MinCost)
	ctx := context.Background()

	regular, _ := users.Create(ctx, "Carol", "carol@example.com", "hash", model.RoleUser, nil)
	admin, _ := users.Create(ctx, "Root", "root@example.com", "hash", model.RoleAdmin, nil)

	if err := svc.Deactivate(ctx, regular.ID); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}
	stored, _ := users.GetByID(ctx, regular.ID)
	if stored.IsActive {
		t.Error("user still active after deactivation")
	}

	if err := svc.Deactivate(ctx, admin.ID); !errors.Is(err, ErrCannotDeactivateAdmin) {
		t.Errorf("deactivate admin err = %v, want ErrCannotDeactivateAdmin", err)
	}
	if err := svc.Deactivate(ctx, 999); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("deactivate missing err = %v, want ErrUserNotFound", err)
	}
}
