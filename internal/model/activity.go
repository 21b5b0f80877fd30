package model

import "time"

// UserActivity represents a row in the `user_activities` table, an
// append-only audit log of user actions. Rows are never updated or
// deleted.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user the action is attributed to.
//  Action    – free-text label such as "login" or "check_in".
//  Timestamp – when the action happened.
//  Metadata  – optional JSON blob with action context (e.g. event id).
type UserActivity struct {
	ID        uint64    `json:"id"`                 // user_activities.id
	UserID    uint64    `json:"user_id"`            // user_activities.user_id
	Action    string    `json:"action"`             // user_activities.action
	Timestamp time.Time `json:"timestamp"`          // user_activities.timestamp
	Metadata  *string   `json:"metadata,omitempty"` // user_activities.metadata (nullable JSON)
}

// Activity action labels written by the services.
const (
	ActivityLogin          = "login"
	ActivityPurchaseTicket = "purchase_ticket"
	ActivityCheckIn        = "check_in"
)
