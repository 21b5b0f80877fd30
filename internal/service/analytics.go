package service

import (
	"context"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// AnalyticsService exposes read-only counters and the user audit
// trail to admins.
type AnalyticsService struct {
	events     EventStore
	activities ActivityStore
}

func NewAnalyticsService(events EventStore, activities ActivityStore) *AnalyticsService {
	return &AnalyticsService{events: events, activities: activities}
}

// EventAttendance returns the number of checked-in tickets.
func (s *AnalyticsService) EventAttendance(ctx context.Context, eventID uint64) (uint32, error) {
	evt, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return evt.AttendanceCount, nil
}

// TicketsSold returns the number of purchased tickets.
func (s *AnalyticsService) TicketsSold(ctx context.Context, eventID uint64) (uint32, error) {
	evt, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return evt.TicketsSold, nil
}

// UserActivity returns a user's audit trail, newest first.
func (s *AnalyticsService) UserActivity(ctx context.Context, userID uint64) ([]model.UserActivity, error) {
	return s.activities.ListByUser(ctx, userID)
}
