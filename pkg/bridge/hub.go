package bridge

import (
	"context"
	"sync"

	"github.com/openmotif/motif/pkg/domain"
)

// Subscriber receives structural-change events after every successful
// mutation. Multiple consumers (a renderer, a devtools panel, a logger) may
// observe the same mutation stream concurrently.
type Subscriber interface {
	Notify(ctx context.Context, event domain.EventType, payload domain.MutationEvent)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, event domain.EventType, payload domain.MutationEvent)

// Notify implements Subscriber.
func (f SubscriberFunc) Notify(ctx context.Context, event domain.EventType, payload domain.MutationEvent) {
	f(ctx, event, payload)
}

// Hub fans mutation events out to zero or more subscribers. With no
// subscribers attached, publishing is a no-op.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]Subscriber
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]Subscriber)}
}

// Subscribe attaches a subscriber and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (h *Hub) Subscribe(sub Subscriber) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish delivers the event to every current subscriber, synchronously and
// in no particular order.
func (h *Hub) Publish(ctx context.Context, event domain.EventType, payload domain.MutationEvent) {
	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.RUnlock()

	for _, s := range subs {
		s.Notify(ctx, event, payload)
	}
}

// Len returns the current subscriber count.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
