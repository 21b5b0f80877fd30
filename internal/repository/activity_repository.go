package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// ActivityRepo provides append and read access to the
// 'user_activities' audit log. Rows are never updated or deleted.
type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// Append records an activity row. Metadata may be empty.
func (r *ActivityRepo) Append(ctx context.Context, userID uint64, action, metadata string) error {
	var meta any
	if metadata != "" {
		meta = metadata
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_activities (user_id, action, timestamp, metadata) VALUES (?,?,?,?)",
		userID, action, time.Now().UTC(), meta)
	return err
}

// ListByUser returns a user's audit trail, newest first.
func (r *ActivityRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserActivity, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,action,timestamp,metadata FROM user_activities WHERE user_id=? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.UserActivity, 0)
	for rows.Next() {
		var a model.UserActivity
		var meta sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Timestamp, &meta); err != nil {
			return nil, err
		}
		if meta.Valid {
			m := meta.String
			a.Metadata = &m
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
