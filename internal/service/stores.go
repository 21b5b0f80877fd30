// Package service implements the business logic of the ticketing
// backend. Services depend on small store interfaces assembled once
// at process start; the MySQL implementations live in the repository
// package and in-memory fakes back the tests.
package service

import (
	"context"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash, role string, profilePicture *string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, patch model.ProfilePatch) error
	List(ctx context.Context) ([]model.User, error)
	Deactivate(ctx context.Context, id uint64) error
}

// TokenStore persists access/refresh token metadata.
type TokenStore interface {
	CreateAccessToken(ctx context.Context, userID uint64, expiresAt time.Time) (model.AccessToken, error)
	CreateRefreshToken(ctx context.Context, accessTokenID string, expiresAt time.Time) (model.RefreshToken, error)
	GetAccessToken(ctx context.Context, id string) (model.AccessToken, error)
	FindActiveByUser(ctx context.Context, userID uint64) (model.AccessToken, error)
	RevokeSession(ctx context.Context, accessTokenID string) error
}

// EventStore persists events and serves search queries.
type EventStore interface {
	Create(ctx context.Context, userID uint64, e model.Event) (model.Event, error)
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Event, error)
	ListNonApproved(ctx context.Context) ([]model.Event, error)
	Search(ctx context.Context, q model.EventSearch, approvedOnly bool) ([]model.Event, error)
	Update(ctx context.Context, id uint64, patch model.EventPatch) error
	SetApproval(ctx context.Context, id uint64, approved bool) error
	Delete(ctx context.Context, id uint64) error
}

// TicketStore persists tickets. Purchase and CheckIn are atomic:
// the ticket row, the event counter and the audit entry move
// together or not at all.
type TicketStore interface {
	Purchase(ctx context.Context, userID, eventID uint64, qrPath string) (model.Ticket, error)
	CheckIn(ctx context.Context, eventID, userID uint64) error
	GetByID(ctx context.Context, userID, ticketID uint64) (model.Ticket, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error)
	ListHolderIDs(ctx context.Context, eventID uint64) ([]uint64, error)
}

// NotificationStore persists notification rows.
type NotificationStore interface {
	Create(ctx context.Context, userID uint64, message string) (model.Notification, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) (model.Notification, error)
}

// ActivityStore appends to and reads the user activity audit log.
type ActivityStore interface {
	Append(ctx context.Context, userID uint64, action, metadata string) error
	ListByUser(ctx context.Context, userID uint64) ([]model.UserActivity, error)
}

// Pusher delivers a payload to every live connection of a user.
// Delivery is best effort; the persisted notification row remains
// the durable record.
type Pusher interface {
	Push(userID uint64, payload any)
}

// QRRenderer renders a QR payload to an image artifact and returns
// its storage path.
type QRRenderer interface {
	Render(data string) (string, error)
}
