package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// TicketRepo provides access to the 'tickets' table. Purchase and
// CheckIn each run inside a single transaction so a ticket row, its
// event counter and the audit trail can never be partially applied.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketColumns = "id,event_id,user_id,qr_code,checked_in,created_at,updated_at"

func scanTicket(sc interface{ Scan(...any) error }) (model.Ticket, error) {
	var t model.Ticket
	err := sc.Scan(&t.ID, &t.EventID, &t.UserID, &t.QRCode, &t.CheckedIn, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Purchase creates a ticket for (userID, eventID) with the given QR
// path. Within one transaction it verifies the event exists, inserts
// the ticket, bumps events.tickets_sold atomically and appends the
// purchase_ticket activity row. ErrEventNotFound is returned when the
// event is absent.
func (r *TicketRepo) Purchase(ctx context.Context, userID, eventID uint64, qrPath string) (model.Ticket, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Ticket{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	if err := tx.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id=?", eventID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Ticket{}, ErrEventNotFound
		}
		return model.Ticket{}, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO tickets (event_id, user_id, qr_code) VALUES (?,?,?)",
		eventID, userID, qrPath)
	if err != nil {
		return model.Ticket{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Ticket{}, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE events SET tickets_sold = tickets_sold + 1 WHERE id=?", eventID); err != nil {
		return model.Ticket{}, err
	}

	if err := insertActivityTx(ctx, tx, userID, model.ActivityPurchaseTicket, eventMetadata(eventID)); err != nil {
		return model.Ticket{}, err
	}

	ticket, err := scanTicket(tx.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id=?", id))
	if err != nil {
		return model.Ticket{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Ticket{}, err
	}
	committed = true
	return ticket, nil
}

// CheckIn redeems the caller's ticket for an event. The checked_in
// flip is guarded in SQL so the transition happens exactly once even
// under concurrent attempts; the attendance counter moves in the same
// transaction, keeping attendance_count <= tickets_sold.
func (r *TicketRepo) CheckIn(ctx context.Context, eventID, userID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	if err := tx.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id=?", eventID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}

	var ticketID uint64
	var checkedIn bool
	err = tx.QueryRowContext(ctx,
		"SELECT id, checked_in FROM tickets WHERE event_id=? AND user_id=? LIMIT 1",
		eventID, userID).Scan(&ticketID, &checkedIn)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTicketNotFound
	}
	if err != nil {
		return err
	}
	if checkedIn {
		return ErrAlreadyCheckedIn
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE tickets SET checked_in=1 WHERE id=? AND checked_in=0", ticketID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Lost the race against a concurrent check-in.
		return ErrAlreadyCheckedIn
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE events SET attendance_count = attendance_count + 1 WHERE id=?", eventID); err != nil {
		return err
	}

	if err := insertActivityTx(ctx, tx, userID, model.ActivityCheckIn, eventMetadata(eventID)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a ticket scoped to its owner. A ticket owned by a
// different user is reported as not found.
func (r *TicketRepo) GetByID(ctx context.Context, userID, ticketID uint64) (model.Ticket, error) {
	t, err := scanTicket(r.DB.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id=? AND user_id=? LIMIT 1", ticketID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// ListByUser returns all tickets held by a user, newest first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE user_id=? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListHolderIDs returns the distinct user ids holding tickets for an
// event, used to fan out update notifications.
func (r *TicketRepo) ListHolderIDs(ctx context.Context, eventID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT DISTINCT user_id FROM tickets WHERE event_id=?", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// eventMetadata renders the activity metadata blob for an event id.
func eventMetadata(eventID uint64) string {
	return fmt.Sprintf(`{"eventId":%d}`, eventID)
}

// insertActivityTx appends an audit row within an open transaction.
func insertActivityTx(ctx context.Context, tx *sql.Tx, userID uint64, action, metadata string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO user_activities (user_id, action, timestamp, metadata) VALUES (?,?,?,?)",
		userID, action, time.Now().UTC(), metadata)
	return err
}
