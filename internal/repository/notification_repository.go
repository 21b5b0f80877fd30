package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// NotificationRepo provides access to the 'notifications' table.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

const notificationColumns = "id,user_id,message,status,created_at,updated_at"

// Create persists a notification with DELIVERED status and returns
// the stored row.
func (r *NotificationRepo) Create(ctx context.Context, userID uint64, message string) (model.Notification, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id, message, status) VALUES (?,?,?)",
		userID, message, model.NotificationDelivered)
	if err != nil {
		return model.Notification{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Notification{}, err
	}
	var n model.Notification
	err = r.DB.QueryRowContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE id=?", id).
		Scan(&n.ID, &n.UserID, &n.Message, &n.Status, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// ListByUser returns a user's notifications, newest first by id.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE user_id=? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Status, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead sets status=READ on a notification scoped to its owner.
// A row owned by someone else maps to ErrNotificationNotFound.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID uint64) (model.Notification, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET status=? WHERE id=? AND user_id=?",
		model.NotificationRead, notificationID, userID)
	if err != nil {
		return model.Notification{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is zero both for a missing row and for a row
		// already READ; re-select to tell them apart.
		var exists bool
		err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM notifications WHERE id=? AND user_id=?", notificationID, userID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, ErrNotificationNotFound
		}
		if err != nil {
			return model.Notification{}, err
		}
	}
	var out model.Notification
	err = r.DB.QueryRowContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE id=? AND user_id=?", notificationID, userID).
		Scan(&out.ID, &out.UserID, &out.Message, &out.Status, &out.CreatedAt, &out.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Notification{}, ErrNotificationNotFound
	}
	return out, err
}
