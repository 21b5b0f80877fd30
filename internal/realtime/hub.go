// Package realtime implements the in-process fan-out channel for
// notifications: an explicit registry from user id to the set of live
// websocket connections, with join/leave tied to connection open and
// close. Undelivered pushes are not queued; the persisted
// notification row is the durable record.
package realtime

import (
	"log"
	"sync"
)

// Conn is the subset of a websocket connection the hub needs. The
// gorilla connection satisfies it directly.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// subscriber pairs a connection with its write mutex. Gorilla
// connections support at most one concurrent writer, so every
// WriteJSON must hold the mutex.
type subscriber struct {
	mu   sync.Mutex
	conn Conn
}

func (s *subscriber) write(payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(payload)
}

// Hub maps user ids to live connections. All methods are safe for
// concurrent use, including concurrent Push calls for one user.
type Hub struct {
	mu   sync.Mutex
	subs map[uint64]map[Conn]*subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]map[Conn]*subscriber)}
}

// Join registers a connection under a user id.
func (h *Hub) Join(userID uint64, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[userID]
	if !ok {
		set = make(map[Conn]*subscriber)
		h.subs[userID] = set
	}
	set[c] = &subscriber{conn: c}
}

// Leave removes a connection; the user entry is dropped when its
// last connection goes away.
func (h *Hub) Leave(userID uint64, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[userID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.subs, userID)
	}
}

// Push writes the payload to every live connection of the user.
// Writes to one connection are serialized through its subscriber
// mutex; connections that fail to write are closed and dropped.
func (h *Hub) Push(userID uint64, payload any) {
	h.mu.Lock()
	set, ok := h.subs[userID]
	if !ok {
		h.mu.Unlock()
		return
	}
	subs := make([]*subscriber, 0, len(set))
	for _, s := range set {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		if err := s.write(payload); err != nil {
			log.Printf("realtime: push to user %d failed: %v", userID, err)
			_ = s.conn.Close()
			h.Leave(userID, s.conn)
		}
	}
}

// Subscribers reports how many live connections a user has.
func (h *Hub) Subscribers(userID uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
