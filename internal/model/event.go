package model

import "time"

// Event represents a row in the `events` table. Events are created
// unapproved and transition to approved/rejected through admin
// moderation; the transition is re-entrant and simply re-sets the
// flag. AttendanceCount and TicketsSold only ever increase, and
// AttendanceCount never exceeds TicketsSold.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – owner of the event.
//  Title           – event title.
//  Description     – free-text description.
//  Location        – venue or address.
//  Category        – category label used for exact-match search.
//  Date            – event date (YYYY-MM-DD).
//  Time            – event start time (HH:MM).
//  IsApproved      – admin approval flag, default false.
//  AttendanceCount – number of checked-in tickets.
//  TicketsSold     – number of tickets purchased.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Event struct {
	ID              uint64    `json:"id"`               // events.id
	UserID          uint64    `json:"user_id"`          // events.user_id
	Title           string    `json:"title"`            // events.title
	Description     string    `json:"description"`      // events.description
	Location        string    `json:"location"`         // events.location
	Category        string    `json:"category"`         // events.category
	Date            string    `json:"date"`             // events.date
	Time            string    `json:"time"`             // events.time
	IsApproved      bool      `json:"is_approved"`      // events.is_approved
	AttendanceCount uint32    `json:"attendance_count"` // events.attendance_count
	TicketsSold     uint32    `json:"tickets_sold"`     // events.tickets_sold
	CreatedAt       time.Time `json:"created_at"`       // events.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // events.updated_at
}
