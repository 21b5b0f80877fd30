package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// Publisher emits ticket lifecycle events to the message broker.
type Publisher interface {
	PublishTicketPurchased(ctx context.Context, ev queue.TicketPurchasedEvent) error
}

// TicketService handles the purchase path and ownership-scoped
// reads. A missing event propagates as NotFound; every other
// purchase failure is logged with a trace id and surfaced as the
// generic ErrPurchaseFailed.
type TicketService struct {
	tickets   TicketStore
	qr        QRRenderer
	publisher Publisher // optional; nil disables broker events
}

func NewTicketService(tickets TicketStore, qr QRRenderer, publisher Publisher) *TicketService {
	return &TicketService{tickets: tickets, qr: qr, publisher: publisher}
}

// Purchase buys a ticket for (userID, eventID). The QR payload is
// the deterministic string Event-<eventId>-User-<userId>, rendered to
// a PNG whose path is stored on the ticket. The ticket insert, the
// tickets_sold increment and the purchase_ticket activity row commit
// in one transaction inside the store.
func (s *TicketService) Purchase(ctx context.Context, userID, eventID uint64) (model.Ticket, error) {
	payload := fmt.Sprintf("Event-%d-User-%d", eventID, userID)
	qrPath, err := s.qr.Render(payload)
	if err != nil {
		return model.Ticket{}, s.purchaseFailure(userID, eventID, err)
	}

	ticket, err := s.tickets.Purchase(ctx, userID, eventID, qrPath)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.Ticket{}, err
		}
		return model.Ticket{}, s.purchaseFailure(userID, eventID, err)
	}

	if s.publisher != nil {
		ev := queue.TicketPurchasedEvent{
			TicketID:    ticket.ID,
			EventID:     eventID,
			UserID:      userID,
			QRCode:      ticket.QRCode,
			PurchasedAt: ticket.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := s.publisher.PublishTicketPurchased(ctx, ev); err != nil {
			log.Printf("ticket: publish purchase event for ticket %d: %v", ticket.ID, err)
		}
	}
	return ticket, nil
}

// purchaseFailure logs the cause under a fresh trace id and returns
// the generic error the caller sees.
func (s *TicketService) purchaseFailure(userID, eventID uint64, cause error) error {
	traceID := uuid.NewString()
	log.Printf("ticket: trace_id=%s purchase failed user=%d event=%d: %v", traceID, userID, eventID, cause)
	return ErrPurchaseFailed
}

// ListByUser returns all tickets held by a user.
func (s *TicketService) ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// Get returns one ticket scoped to its owner.
func (s *TicketService) Get(ctx context.Context, userID, ticketID uint64) (model.Ticket, error) {
	return s.tickets.GetByID(ctx, userID, ticketID)
}
