// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketPurchasedEvent is published when a ticket purchase commits.
// It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type TicketPurchasedEvent struct {
	TicketID    uint64 `json:"ticket_id"`
	EventID     uint64 `json:"event_id"`
	UserID      uint64 `json:"user_id"`
	QRCode      string `json:"qr_code"`
	PurchasedAt string `json:"purchased_at"`
}
