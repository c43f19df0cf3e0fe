// Package notify tells live entry streams that an owner's entries changed.
//
// Hub fans changes out to subscribers inside one process. PostgresNotifier
// carries them between server instances through LISTEN/NOTIFY and feeds
// the local Hub.
package notify

import (
	"context"
	"sync"
)

// Hub delivers change signals keyed by owner id. Signals carry no payload:
// a subscriber reacts by re-reading the owner's entries, so pending
// signals coalesce into one.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

type Subscription struct {
	hub    *Hub
	userID string
	ch     chan struct{}
	once   sync.Once
}

// C receives one value per burst of changes published since the last receive.
func (s *Subscription) C() <-chan struct{} {
	return s.ch
}

// Close detaches the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

func (h *Hub) Subscribe(userID string) *Subscription {
	s := &Subscription{hub: h, userID: userID, ch: make(chan struct{}, 1)}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[userID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[userID] = set
	}
	set[s] = struct{}{}

	return s
}

// Publish signals every subscriber of userID. It never blocks.
func (h *Hub) Publish(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs[userID] {
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

// PublishAll signals every subscriber of every owner.
func (h *Hub) PublishAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, set := range h.subs {
		for s := range set {
			select {
			case s.ch <- struct{}{}:
			default:
			}
		}
	}
}

// Notify publishes locally. It lets a Hub serve as the notifier when no
// database fan-out is configured.
func (h *Hub) Notify(_ context.Context, userID string) error {
	h.Publish(userID)
	return nil
}

// Subscribers reports the number of live subscriptions for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[s.userID]
	delete(set, s)
	if len(set) == 0 {
		delete(h.subs, s.userID)
	}
}
