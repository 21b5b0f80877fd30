package service

import (
	"context"
	"log"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// NotificationService persists notifications and pushes them to any
// live connections of the recipient. The row is returned regardless
// of whether a live channel existed; offline users poll later.
type NotificationService struct {
	store  NotificationStore
	pusher Pusher // optional; nil disables real-time push
}

func NewNotificationService(store NotificationStore, pusher Pusher) *NotificationService {
	return &NotificationService{store: store, pusher: pusher}
}

// Create persists a DELIVERED notification and best-effort pushes it.
func (s *NotificationService) Create(ctx context.Context, userID uint64, message string) (model.Notification, error) {
	n, err := s.store.Create(ctx, userID, message)
	if err != nil {
		return model.Notification{}, err
	}
	if s.pusher != nil {
		s.pusher.Push(userID, n)
	}
	return n, nil
}

// Notify implements Notifier for callers that do not care about the
// created row. Failures are logged, not propagated.
func (s *NotificationService) Notify(ctx context.Context, userID uint64, message string) {
	if _, err := s.Create(ctx, userID, message); err != nil {
		log.Printf("notification: create for user %d: %v", userID, err)
	}
}

// ListByUser returns a user's notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

// MarkRead sets READ on a notification owned by the user.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint64) (model.Notification, error) {
	return s.store.MarkRead(ctx, userID, notificationID)
}
