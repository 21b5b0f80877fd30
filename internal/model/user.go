package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because handlers never
// marshal this struct directly; responses go through the sanitized
// UserView so the password hash cannot leak.
// Deactivated accounts keep their row with IsActive=false; users
// are never physically deleted.
//
// Fields:
//  ID             – primary key identifier of the user.
//  Name           – display name.
//  Email          – unique email address.
//  PasswordHash   – bcrypt hashed password.
//  ProfilePicture – optional path to an uploaded profile image.
//  Role           – role name ("user" or "admin").
//  IsActive       – whether the account is active.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
	ID             uint64    // users.id
	Name           string    // users.name
	Email          string    // users.email
	PasswordHash   string    // users.password_hash
	ProfilePicture *string   // users.profile_picture (nullable)
	Role           string    // users.role
	IsActive       bool      // users.is_active
	CreatedAt      time.Time // users.created_at
	UpdatedAt      time.Time // users.updated_at
}

// Roles recognised in users.role. Admins may moderate events and
// deactivate user accounts; the role is never changed by the user
// themself.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
