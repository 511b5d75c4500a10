package sse

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event is the payload pushed to every subscriber when the inventory changes.
// Count is the total number of rows after the change; clients needing more
// detail refetch on their own.
type Event struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Subscriber is one live connection. Events are delivered on a buffered
// channel; a subscriber that stops draining misses events rather than
// blocking the broadcast.
type Subscriber struct {
	id int64
	ch chan Event
}

// Events returns the channel this subscriber receives on.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Hub owns the set of live subscribers. All access to the set goes through
// Subscribe, Unsubscribe and Broadcast; the set is never shared out.
type Hub struct {
	mu     sync.Mutex
	subs   map[int64]*Subscriber
	nextID int64
	log    zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{subs: make(map[int64]*Subscriber), log: log}
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscriber{id: h.nextID, ch: make(chan Event, 8)}
	h.subs[sub.id] = sub
	h.log.Debug().Int64("subscriber_id", sub.id).Int("subscribers", len(h.subs)).Msg("sse subscriber connected")
	return sub
}

// Unsubscribe removes a subscriber. Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub.id]; !ok {
		return
	}
	delete(h.subs, sub.id)
	h.log.Debug().Int64("subscriber_id", sub.id).Int("subscribers", len(h.subs)).Msg("sse subscriber disconnected")
}

// Broadcast pushes an update event with the given count to every live
// subscriber. A subscriber with a full buffer is skipped; one stalled
// connection never stops delivery to the rest.
func (h *Hub) Broadcast(count int) {
	ev := Event{Type: "update", Count: count}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, sub := range h.subs {
		select {
		case sub.ch <- ev:
			delivered++
		default:
		}
	}
	h.log.Debug().Int("count", count).Int("delivered", delivered).Int("subscribers", len(h.subs)).Msg("broadcast inventory update")
}

// Len reports the current number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
