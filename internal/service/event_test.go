package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

func newEventFixture() (*EventService, *fakeEventStore, *fakeTicketStore, *recordingNotifier) {
	events := newFakeEventStore()
	tickets := newFakeTicketStore(events)
	notifier := &recordingNotifier{}
	return NewEventService(events, tickets, notifier), events, tickets, notifier
}

func TestCreateEventStartsUnapproved(t *testing.T) {
	svc, _, _, _ := newEventFixture()
	ctx := context.Background()

	evt, err := svc.Create(ctx, 7, CreateEventInput{Title: "GopherCon", Date: "2026-10-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if evt.IsApproved {
		t.Error("new event is approved, want unapproved")
	}
	if evt.TicketsSold != 0 || evt.AttendanceCount != 0 {
		t.Errorf("counters = %d/%d, want 0/0", evt.TicketsSold, evt.AttendanceCount)
	}
	if evt.UserID != 7 {
		t.Errorf("owner = %d, want 7", evt.UserID)
	}
}

func TestSearchExcludesUnapproved(t *testing.T) {
	svc, events, _, _ := newEventFixture()
	ctx := context.Background()

	a, _ := svc.Create(ctx, 1, CreateEventInput{Title: "Jazz Night", Location: "Oslo", Category: "music"})
	if _, err := svc.Create(ctx, 1, CreateEventInput{Title: "Jazz Brunch", Location: "Oslo", Category: "music"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := events.SetApproval(ctx, a.ID, true); err != nil {
		t.Fatalf("approve: %v", err)
	}

	got, err := svc.Search(ctx, model.EventSearch{Keyword: "Jazz"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("search returned %+v, want only the approved event", got)
	}
}

func TestUpdateNotifiesHoldersWithOldTitle(t *testing.T) {
	svc, _, tickets, notifier := newEventFixture()
	ctx := context.Background()

	evt, _ := svc.Create(ctx, 1, CreateEventInput{Title: "Old Title", Date: "2026-10-01"})
	for _, holder := range []uint64{10, 11} {
		if _, err := tickets.Purchase(ctx, holder, evt.ID, "qr"); err != nil {
			t.Fatalf("purchase: %v", err)
		}
	}

	newTitle := "New Title"
	if err := svc.Update(ctx, evt.ID, 1, model.EventPatch{Title: &newTitle}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := svc.Get(ctx, evt.ID)
	if got.Title != newTitle {
		t.Errorf("title = %q, want %q", got.Title, newTitle)
	}

	want := fmt.Sprintf("Event %q has been updated.", "Old Title")
	if len(notifier.calls) != 2 {
		t.Fatalf("notified %d holders, want 2", len(notifier.calls))
	}
	seen := map[uint64]bool{}
	for _, call := range notifier.calls {
		if call.Message != want {
			t.Errorf("message = %q, want %q", call.Message, want)
		}
		seen[call.UserID] = true
	}
	if !seen[10] || !seen[11] {
		t.Errorf("notified users %v, want 10 and 11", notifier.calls)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	svc, _, _, notifier := newEventFixture()
	ctx := context.Background()

	evt, _ := svc.Create(ctx, 1, CreateEventInput{Title: "Keep", Date: "2026-10-01"})
	title := "Stolen"
	if err := svc.Update(ctx, evt.ID, 2, model.EventPatch{Title: &title}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("non-owner update err = %v, want ErrNotOwner", err)
	}

	got, _ := svc.Get(ctx, evt.ID)
	if got.Title != "Keep" {
		t.Errorf("title changed to %q after rejected update", got.Title)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("rejected update sent %d notifications", len(notifier.calls))
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	svc, _, _, _ := newEventFixture()
	ctx := context.Background()

	evt, _ := svc.Create(ctx, 1, CreateEventInput{Title: "Mine"})
	if err := svc.Delete(ctx, evt.ID, 2); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner delete err = %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(ctx, evt.ID, 1); err != nil {
		t.Errorf("owner delete: %v", err)
	}
	if _, err := svc.Get(ctx, evt.ID); !errors.Is(err, repository.ErrEventNotFound) {
		t.Errorf("get after delete err = %v, want ErrEventNotFound", err)
	}
}

func TestModerationNotifiesOwnerOnce(t *testing.T) {
	svc, _, _, notifier := newEventFixture()
	ctx := context.Background()

	evt, _ := svc.Create(ctx, 42, CreateEventInput{Title: "Pending"})

	if err := svc.Approve(ctx, evt.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, _ := svc.Get(ctx, evt.ID)
	if !got.IsApproved {
		t.Error("event not approved after Approve")
	}
	if len(notifier.calls) != 1 || notifier.calls[0].UserID != 42 || notifier.calls[0].Message != "Your event has been approved" {
		t.Errorf("approve notifications = %+v", notifier.calls)
	}

	// Re-entrant: a second approval emits exactly one more
	// notification.
	if err := svc.Approve(ctx, evt.ID); err != nil {
		t.Fatalf("second approve: %v", err)
	}
	if len(notifier.calls) != 2 {
		t.Errorf("second approve: %d notifications total, want 2", len(notifier.calls))
	}

	if err := svc.Reject(ctx, evt.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	got, _ = svc.Get(ctx, evt.ID)
	if got.IsApproved {
		t.Error("event still approved after Reject")
	}
	last := notifier.calls[len(notifier.calls)-1]
	if last.Message != "Your event has been rejected" {
		t.Errorf("reject message = %q", last.Message)
	}
}

func TestModerationMissingEvent(t *testing.T) {
	svc, _, _, notifier := newEventFixture()
	ctx := context.Background()

	if err := svc.Approve(ctx, 999); !errors.Is(err, repository.ErrEventNotFound) {
		t.Errorf("approve missing err = %v, want ErrEventNotFound", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("missing event still notified: %+v", notifier.calls)
	}
}

func TestCheckInLifecycle(t *testing.T) {
	svc, events, tickets, _ := newEventFixture()
	ctx := context.Background()

	evt, _ := svc.Create(ctx, 1, CreateEventInput{Title: "Show"})
	if _, err := tickets.Purchase(ctx, 5, evt.ID, "qr"); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	// No ticket for this user.
	if err := svc.CheckIn(ctx, evt.ID, 6); !errors.Is(err, repository.ErrTicketNotFound) {
		t.Errorf("check-in without ticket err = %v, want ErrTicketNotFound", err)
	}

	if err := svc.CheckIn(ctx, evt.ID, 5); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if err := svc.CheckIn(ctx, evt.ID, 5); !errors.Is(err, repository.ErrAlreadyCheckedIn) {
		t.Errorf("second check-in err = %v, want ErrAlreadyCheckedIn", err)
	}

	got, _ := events.GetByID(ctx, evt.ID)
	if got.AttendanceCount != 1 || got.TicketsSold != 1 {
		t.Errorf("counters = %d/%d, want 1/1", got.AttendanceCount, got.TicketsSold)
	}
	if got.AttendanceCount > got.TicketsSold {
		t.Error("attendance exceeds tickets sold")
	}

	if err := svc.CheckIn(ctx, 999, 5); !errors.Is(err, repository.ErrEventNotFound) {
		t.Errorf("check-in missing event err = %v, want ErrEventNotFound", err)
	}
}
