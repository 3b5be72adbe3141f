// Package changefeed is the in-process change-notification feed the
// repositories publish to after every successful mutation. Snapshot
// holders (reporting) subscribe per table to keep their in-memory
// collections current without re-querying the store.
package changefeed

import (
	"sync"
)

type Op string

const (
	OpInserted Op = "inserted"
	OpUpdated  Op = "updated"
	OpDeleted  Op = "deleted"
)

// Event carries one mutation on one table.
type Event struct {
	Table  string
	Op     Op
	Record interface{}
}

// Hub manages table subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new change feed hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a table and returns the event
// channel and a cleanup function.
func (h *Hub) Subscribe(table string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 64)

	if h.subscribers[table] == nil {
		h.subscribers[table] = make(map[chan Event]struct{})
	}
	h.subscribers[table][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[table], ch)
		close(ch)
		if len(h.subscribers[table]) == 0 {
			delete(h.subscribers, table)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of the event's table.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[event.Table]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a table.
func (h *Hub) SubscriberCount(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[table]; ok {
		return len(subs)
	}
	return 0
}
