// Package events is the in-process change feed behind the live listing
// streams. Every mutation of a suggestion publishes one event; stream
// consumers re-query their snapshot on each event, so a dropped event for a
// slow consumer is recovered by the next one.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	SuggestionCreated Type = "suggestion.created"
	SuggestionUpdated Type = "suggestion.updated"
	SuggestionDeleted Type = "suggestion.deleted"
	SuggestionVoted   Type = "suggestion.voted"
)

type Event struct {
	Type         Type      `json:"type"`
	SuggestionID uuid.UUID `json:"suggestion_id"`
	At           time.Time `json:"at"`
}

const subscriberBuffer = 16

type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]chan Event
	nextID uint64
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]chan Event),
	}
}

// Subscribe registers a consumer and returns its event channel together with
// an unsubscribe function. Callers must invoke the unsubscribe function when
// the owning view goes away; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}

	return ch, unsubscribe
}

// Publish delivers the event to every subscriber without blocking. Delivery
// to a single subscriber is in publish order; a subscriber whose buffer is
// full misses the event and catches up on the next one.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close tears down all subscriptions; further publishes are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
