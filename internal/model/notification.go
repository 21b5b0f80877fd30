package model

import "time"

// Notification status values. A notification is created DELIVERED
// and moves to READ when the user acknowledges it.
const (
	NotificationDelivered = "DELIVERED"
	NotificationRead      = "READ"
)

// Notification represents a row in the `notifications` table. The
// persisted row is the durable record; real-time delivery over the
// websocket hub is best effort only.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – recipient of the notification.
//  Message   – human-readable message body.
//  Status    – DELIVERED or READ.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Notification struct {
	ID        uint64    `json:"id"`         // notifications.id
	UserID    uint64    `json:"user_id"`    // notifications.user_id
	Message   string    `json:"message"`    // notifications.message
	Status    string    `json:"status"`     // notifications.status
	CreatedAt time.Time `json:"created_at"` // notifications.created_at
	UpdatedAt time.Time `json:"updated_at"` // notifications.updated_at
}
