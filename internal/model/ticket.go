package model

import "time"

// Ticket represents a row in the `tickets` table. A ticket is
// created at purchase and mutates exactly once afterwards, when the
// holder checks in at the event.
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – event the ticket admits to.
//  UserID    – ticket holder.
//  QRCode    – unique path of the rendered QR image.
//  CheckedIn – flips false→true at most once.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Ticket struct {
	ID        uint64    `json:"id"`         // tickets.id
	EventID   uint64    `json:"event_id"`   // tickets.event_id
	UserID    uint64    `json:"user_id"`    // tickets.user_id
	QRCode    string    `json:"qr_code"`    // tickets.qr_code
	CheckedIn bool      `json:"checked_in"` // tickets.checked_in
	CreatedAt time.Time `json:"created_at"` // tickets.created_at
	UpdatedAt time.Time `json:"updated_at"` // tickets.updated_at
}
