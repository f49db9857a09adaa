// Package realtime provides in-process fan-out of committed chat messages to
// live conversation feeds. The hub is transport-agnostic: the websocket layer
// subscribes per match and ships whatever arrives on the subscription channel.
//
// Delivery guarantees are deliberately modest: messages for one match are
// delivered to each subscriber in publish order, but a subscriber that cannot
// keep up has messages dropped rather than stalling the publisher. The
// database is the source of truth; a reconnecting client reloads history.
package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/pawmatch/go-dating-backend/internal/domain"
)

// Hub routes published messages to the subscribers of their match. The zero
// value is not usable; construct with NewHub.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
	closed bool
	log    zerolog.Logger
}

// Subscription is one live listener on a single match. Messages arrive on C
// in publish order. Close detaches the subscription and closes C.
type Subscription struct {
	// C delivers the match's messages. Closed when the subscription or the
	// hub shuts down.
	C <-chan domain.Message

	hub     *Hub
	matchID string
	ch      chan domain.Message
	once    sync.Once
}

// NewHub constructs a hub whose subscriptions buffer up to buffer messages
// each. A non-positive buffer defaults to 16.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe attaches a new listener to matchID. The caller must Close the
// subscription when done. Subscribing on a closed hub returns a subscription
// whose channel is already closed.
func (h *Hub) Subscribe(matchID string) *Subscription {
	ch := make(chan domain.Message, h.buffer)
	sub := &Subscription{C: ch, hub: h, matchID: matchID, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.once.Do(func() { close(ch) })
		return sub
	}
	set, ok := h.subs[matchID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[matchID] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Publish fans msg out to every subscriber of matchID without blocking. A
// subscriber whose buffer is full has this message dropped; it will catch up
// from the database on its next history load.
func (h *Hub) Publish(matchID string, msg domain.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for sub := range h.subs[matchID] {
		select {
		case sub.ch <- msg:
		default:
			h.log.Warn().
				Str("match_id", matchID).
				Str("message_id", msg.ID).
				Msg("realtime: subscriber buffer full, message dropped")
		}
	}
}

// Subscribers reports the number of live subscriptions on matchID.
func (h *Hub) Subscribers(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[matchID])
}

// Close shuts the hub down and closes every subscription channel. Publish and
// Subscribe become no-ops afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, set := range h.subs {
		for sub := range set {
			sub.once.Do(func() { close(sub.ch) })
		}
	}
	h.subs = make(map[string]map[*Subscription]struct{})
}

// Close detaches the subscription from the hub and closes its channel.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	if set, ok := s.hub.subs[s.matchID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(s.hub.subs, s.matchID)
		}
	}
	s.hub.mu.Unlock()
	s.once.Do(func() { close(s.ch) })
}
