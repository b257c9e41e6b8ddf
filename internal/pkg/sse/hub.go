package sse

import (
	"sync"
)

// Event is a server-sent event addressed to one employee
type Event struct {
	Recipient string
	Event     string
	Data      interface{}
}

// Hub fans notification events out to connected clients, keyed by
// recipient email. Publishing to an absent or slow recipient never blocks.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a recipient and returns the event
// channel plus a cleanup function the caller must invoke on disconnect.
func (h *Hub) Subscribe(recipient string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[recipient] == nil {
		h.subscribers[recipient] = make(map[chan Event]struct{})
	}
	h.subscribers[recipient][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[recipient], ch)
		close(ch)
		if len(h.subscribers[recipient]) == 0 {
			delete(h.subscribers, recipient)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all of the recipient's active subscriptions
func (h *Hub) Publish(recipient string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[recipient]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Slow consumer, drop rather than block the publisher
			}
		}
	}
}

// SubscriberCount returns the number of active subscriptions for a recipient
func (h *Hub) SubscriberCount(recipient string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[recipient])
}
