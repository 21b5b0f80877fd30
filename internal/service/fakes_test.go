package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// In-memory stores backing the service tests. They mirror the
// sentinel behavior of the MySQL repositories.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, name, email, passwordHash, role string, profilePicture *string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	s.nextID++
	u := model.User{
		ID:             s.nextID,
		Name:           name,
		Email:          email,
		PasswordHash:   passwordHash,
		ProfilePicture: profilePicture,
		Role:           role,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id uint64, patch model.ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.ProfilePicture != nil {
		u.ProfilePicture = patch.ProfilePicture
	}
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) Deactivate(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsActive = false
	s.users[id] = u
	return nil
}

type fakeTokenStore struct {
	mu      sync.Mutex
	nextID  int
	access  map[string]model.AccessToken
	refresh map[string]model.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		access:  make(map[string]model.AccessToken),
		refresh: make(map[string]model.RefreshToken),
	}
}

func (s *fakeTokenStore) newID() string {
	s.nextID++
	return fmt.Sprintf("tok-%d", s.nextID)
}

func (s *fakeTokenStore) CreateAccessToken(_ context.Context, userID uint64, expiresAt time.Time) (model.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := model.AccessToken{ID: s.newID(), UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	s.access[t.ID] = t
	return t, nil
}

func (s *fakeTokenStore) CreateRefreshToken(_ context.Context, accessTokenID string, expiresAt time.Time) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := model.RefreshToken{ID: s.newID(), AccessTokenID: accessTokenID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	s.refresh[t.ID] = t
	return t, nil
}

func (s *fakeTokenStore) GetAccessToken(_ context.Context, id string) (model.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.access[id]
	if !ok {
		return model.AccessToken{}, repository.ErrTokenNotFound
	}
	return t, nil
}

func (s *fakeTokenStore) FindActiveByUser(_ context.Context, userID uint64) (model.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *model.AccessToken
	for _, t := range s.access {
		if t.UserID == userID && !t.IsRevoked {
			if found == nil || t.CreatedAt.After(found.CreatedAt) {
				tt := t
				found = &tt
			}
		}
	}
	if found == nil {
		return model.AccessToken{}, repository.ErrTokenNotFound
	}
	return *found, nil
}

func (s *fakeTokenStore) RevokeSession(_ context.Context, accessTokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.access[accessTokenID]
	if !ok {
		return repository.ErrTokenNotFound
	}
	t.IsRevoked = true
	s.access[accessTokenID] = t
	for id, r := range s.refresh {
		if r.AccessTokenID == accessTokenID {
			r.IsRevoked = true
			s.refresh[id] = r
		}
	}
	return nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	nextID uint64
	events map[uint64]model.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[uint64]model.Event)}
}

func (s *fakeEventStore) Create(_ context.Context, userID uint64, e model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	e.UserID = userID
	e.CreatedAt = time.Now()
	s.events[e.ID] = e
	return e, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id uint64) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	return e, nil
}

func (s *fakeEventStore) ListByUser(_ context.Context, userID uint64) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Event{}
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEventStore) ListNonApproved(_ context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Event{}
	for _, e := range s.events {
		if !e.IsApproved {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEventStore) Search(_ context.Context, q model.EventSearch, approvedOnly bool) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Event{}
	for _, e := range s.events {
		if approvedOnly && !e.IsApproved {
			continue
		}
		if q.Keyword != "" && !strings.Contains(e.Title, q.Keyword) {
			continue
		}
		if q.Location != "" && e.Location != q.Location {
			continue
		}
		if q.Category != "" && e.Category != q.Category {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeEventStore) Update(_ context.Context, id uint64, patch model.EventPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Time != nil {
		e.Time = *patch.Time
	}
	s.events[id] = e
	return nil
}

func (s *fakeEventStore) SetApproval(_ context.Context, id uint64, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}
	e.IsApproved = approved
	s.events[id] = e
	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

// fakeTicketStore keeps tickets in memory and maintains the event
// counters on the linked event store, matching the transactional
// behavior of the MySQL implementation.
type fakeTicketStore struct {
	mu      sync.Mutex
	nextID  uint64
	tickets map[uint64]model.Ticket
	events  *fakeEventStore

	purchaseErr error // when set, Purchase fails with this error
}

func newFakeTicketStore(events *fakeEventStore) *fakeTicketStore {
	return &fakeTicketStore{tickets: make(map[uint64]model.Ticket), events: events}
}

func (s *fakeTicketStore) Purchase(ctx context.Context, userID, eventID uint64, qrPath string) (model.Ticket, error) {
	if s.purchaseErr != nil {
		return model.Ticket{}, s.purchaseErr
	}
	s.events.mu.Lock()
	e, ok := s.events.events[eventID]
	if !ok {
		s.events.mu.Unlock()
		return model.Ticket{}, repository.ErrEventNotFound
	}
	e.TicketsSold++
	s.events.events[eventID] = e
	s.events.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := model.Ticket{ID: s.nextID, EventID: eventID, UserID: userID, QRCode: qrPath, CreatedAt: time.Now()}
	s.tickets[t.ID] = t
	return t, nil
}

func (s *fakeTicketStore) CheckIn(_ context.Context, eventID, userID uint64) error {
	s.events.mu.Lock()
	e, ok := s.events.events[eventID]
	s.events.mu.Unlock()
	if !ok {
		return repository.ErrEventNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tickets {
		if t.EventID == eventID && t.UserID == userID {
			if t.CheckedIn {
				return repository.ErrAlreadyCheckedIn
			}
			t.CheckedIn = true
			s.tickets[id] = t

			s.events.mu.Lock()
			e.AttendanceCount++
			s.events.events[eventID] = e
			s.events.mu.Unlock()
			return nil
		}
	}
	return repository.ErrTicketNotFound
}

func (s *fakeTicketStore) GetByID(_ context.Context, userID, ticketID uint64) (model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok || t.UserID != userID {
		return model.Ticket{}, repository.ErrTicketNotFound
	}
	return t, nil
}

func (s *fakeTicketStore) ListByUser(_ context.Context, userID uint64) ([]model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Ticket{}
	for _, t := range s.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTicketStore) ListHolderIDs(_ context.Context, eventID uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[uint64]bool{}
	out := []uint64{}
	for _, t := range s.tickets {
		if t.EventID == eventID && !seen[t.UserID] {
			seen[t.UserID] = true
			out = append(out, t.UserID)
		}
	}
	return out, nil
}

type fakeNotificationStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.Notification

	createErr error
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{rows: make(map[uint64]model.Notification)}
}

func (s *fakeNotificationStore) Create(_ context.Context, userID uint64, message string) (model.Notification, error) {
	if s.createErr != nil {
		return model.Notification{}, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n := model.Notification{ID: s.nextID, UserID: userID, Message: message, Status: model.NotificationDelivered, CreatedAt: time.Now()}
	s.rows[n.ID] = n
	return n, nil
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userID uint64) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Notification{}
	for _, n := range s.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, userID, notificationID uint64) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.rows[notificationID]
	if !ok || n.UserID != userID {
		return model.Notification{}, repository.ErrNotificationNotFound
	}
	n.Status = model.NotificationRead
	s.rows[notificationID] = n
	return n, nil
}

type fakeActivityStore struct {
	mu   sync.Mutex
	rows []model.UserActivity
}

func (s *fakeActivityStore) Append(_ context.Context, userID uint64, action, metadata string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := model.UserActivity{ID: uint64(len(s.rows) + 1), UserID: userID, Action: action, Timestamp: time.Now()}
	if metadata != "" {
		a.Metadata = &metadata
	}
	s.rows = append(s.rows, a)
	return nil
}

func (s *fakeActivityStore) ListByUser(_ context.Context, userID uint64) ([]model.UserActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.UserActivity{}
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].UserID == userID {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

// eventNamed builds a minimal event payload for Create.
func eventNamed(title string) model.Event {
	return model.Event{Title: title, Date: "2026-10-01"}
}

// recordingNotifier captures Notify calls.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []struct {
		UserID  uint64
		Message string
	}
}

func (n *recordingNotifier) Notify(_ context.Context, userID uint64, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, struct {
		UserID  uint64
		Message string
	}{userID, message})
}

// recordingPusher captures Push calls.
type recordingPusher struct {
	mu    sync.Mutex
	calls []struct {
		UserID  uint64
		Payload any
	}
}

func (p *recordingPusher) Push(userID uint64, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, struct {
		UserID  uint64
		Payload any
	}{userID, payload})
}

// fakeQR records the rendered payloads and returns deterministic
// paths.
type fakeQR struct {
	mu      sync.Mutex
	renders []string
	err     error
}

func (q *fakeQR) Render(data string) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.renders = append(q.renders, data)
	return fmt.Sprintf("qr_codes/%d.png", len(q.renders)), nil
}
