package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// Notifier sends a message to a user. Implemented by
// NotificationService; failures are logged, never propagated, so a
// broken notification channel cannot fail a state change that has
// already been persisted.
type Notifier interface {
	Notify(ctx context.Context, userID uint64, message string)
}

// EventService manages the event lifecycle: create, update, delete,
// search, moderation and check-in. Ownership and approval-state
// checks live here; persistence is delegated to the stores.
type EventService struct {
	events   EventStore
	tickets  TicketStore
	notifier Notifier
}

func NewEventService(events EventStore, tickets TicketStore, notifier Notifier) *EventService {
	return &EventService{events: events, tickets: tickets, notifier: notifier}
}

// CreateEventInput is the payload accepted by Create.
type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Date        string
	Time        string
}

// Create persists a new event owned by ownerID. Events start
// unapproved with zeroed counters.
func (s *EventService) Create(ctx context.Context, ownerID uint64, in CreateEventInput) (model.Event, error) {
	return s.events.Create(ctx, ownerID, model.Event{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Category:    in.Category,
		Date:        in.Date,
		Time:        in.Time,
	})
}

// Get returns an event by id.
func (s *EventService) Get(ctx context.Context, id uint64) (model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// ListByOwner returns the events created by a user.
func (s *EventService) ListByOwner(ctx context.Context, userID uint64) ([]model.Event, error) {
	return s.events.ListByUser(ctx, userID)
}

// Search returns approved events matching the optional filters.
// Unapproved events never appear in public search results.
func (s *EventService) Search(ctx context.Context, q model.EventSearch) ([]model.Event, error) {
	return s.events.Search(ctx, q, true)
}

// Update applies a partial patch to an event after checking
// ownership. Every ticket holder is then notified, quoting the
// pre-update title.
func (s *EventService) Update(ctx context.Context, eventID, requesterID uint64, patch model.EventPatch) error {
	evt, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if evt.UserID != requesterID {
		return ErrNotOwner
	}
	preTitle := evt.Title
	if err := s.events.Update(ctx, eventID, patch); err != nil {
		return err
	}
	holders, err := s.tickets.ListHolderIDs(ctx, eventID)
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Event %q has been updated.", preTitle)
	for _, uid := range holders {
		s.notifier.Notify(ctx, uid, msg)
	}
	return nil
}

// Delete removes an event after checking ownership. Tickets are
// removed by the relational cascade.
func (s *EventService) Delete(ctx context.Context, eventID, requesterID uint64) error {
	evt, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if evt.UserID != requesterID {
		return ErrNotOwner
	}
	return s.events.Delete(ctx, eventID)
}

// ListNonApproved returns all events awaiting moderation.
func (s *EventService) ListNonApproved(ctx context.Context) ([]model.Event, error) {
	return s.events.ListNonApproved(ctx)
}

// Approve sets the approval flag and notifies the owner. The call is
// re-entrant: each invocation re-sets the flag and emits exactly one
// notification.
func (s *EventService) Approve(ctx context.Context, eventID uint64) error {
	return s.moderate(ctx, eventID, true, "Your event has been approved")
}

// Reject clears the approval flag and notifies the owner.
func (s *EventService) Reject(ctx context.Context, eventID uint64) error {
	return s.moderate(ctx, eventID, false, "Your event has been rejected")
}

func (s *EventService) moderate(ctx context.Context, eventID uint64, approved bool, message string) error {
	evt, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.events.SetApproval(ctx, eventID, approved); err != nil {
		return err
	}
	s.notifier.Notify(ctx, evt.UserID, message)
	return nil
}

// CheckIn redeems the caller's ticket for an event. Missing events
// map to repository.ErrEventNotFound; a missing ticket or a repeated
// check-in surface as repository sentinels the handler maps to 401.
func (s *EventService) CheckIn(ctx context.Context, eventID, userID uint64) error {
	return s.tickets.CheckIn(ctx, eventID, userID)
}
