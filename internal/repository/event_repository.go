package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// EventRepo provides CRUD and search access to the 'events' table.
// Counter columns are only ever touched with atomic increments so
// concurrent purchases or check-ins cannot lose updates.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = "id,user_id,title,description,location,category,date,time,is_approved,attendance_count,tickets_sold,created_at,updated_at"

func scanEvent(sc interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := sc.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.Location, &e.Category,
		&e.Date, &e.Time, &e.IsApproved, &e.AttendanceCount, &e.TicketsSold, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create inserts a new event owned by userID. New events start
// unapproved with zeroed counters.
func (r *EventRepo) Create(ctx context.Context, userID uint64, e model.Event) (model.Event, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (user_id, title, description, location, category, date, time) VALUES (?,?,?,?,?,?,?)",
		userID, e.Title, e.Description, e.Location, e.Category, e.Date, e.Time)
	if err != nil {
		return model.Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches an event by id.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// ListByUser returns all events owned by a user.
func (r *EventRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Event, error) {
	return r.list(ctx, "SELECT "+eventColumns+" FROM events WHERE user_id=? ORDER BY id DESC", userID)
}

// ListNonApproved returns all events awaiting moderation.
func (r *EventRepo) ListNonApproved(ctx context.Context) ([]model.Event, error) {
	return r.list(ctx, "SELECT "+eventColumns+" FROM events WHERE is_approved=0 ORDER BY id DESC")
}

// Search filters events by optional keyword (title substring),
// location and category (exact). When approvedOnly is set only
// approved events are returned.
func (r *EventRepo) Search(ctx context.Context, q model.EventSearch, approvedOnly bool) ([]model.Event, error) {
	where := []string{}
	args := []any{}
	if q.Keyword != "" {
		where = append(where, "title LIKE ?")
		args = append(args, "%"+q.Keyword+"%")
	}
	if q.Location != "" {
		where = append(where, "location=?")
		args = append(args, q.Location)
	}
	if q.Category != "" {
		where = append(where, "category=?")
		args = append(args, q.Category)
	}
	if approvedOnly {
		where = append(where, "is_approved=1")
	}
	query := "SELECT " + eventColumns + " FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	return r.list(ctx, query, args...)
}

func (r *EventRepo) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update applies a partial patch to an event's mutable columns.
// Nil fields are left untouched. Ownership is checked by the service
// before calling.
func (r *EventRepo) Update(ctx context.Context, id uint64, patch model.EventPatch) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, *v)
		}
	}
	add("title", patch.Title)
	add("description", patch.Description)
	add("location", patch.Location)
	add("category", patch.Category)
	add("date", patch.Date)
	add("time", patch.Time)
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}

// SetApproval re-sets the approval flag. The transition is
// re-entrant: approve or reject may be called again at any time.
func (r *EventRepo) SetApproval(ctx context.Context, id uint64, approved bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE events SET is_approved=? WHERE id=?", approved, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id=?", id).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
	}
	return nil
}

// Delete hard-deletes an event; its tickets go with it via the
// relational cascade.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}
