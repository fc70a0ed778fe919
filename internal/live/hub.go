// Package live implements the push-based read path for guest lists: once
// subscribed, a client receives the full current snapshot whenever the
// event's collection changes, replacing its local copy wholesale.
package live

import (
	"context"
	"sync"

	"banhchi-platform/internal/guest"
	"banhchi-platform/pkg/logger"
)

// Loader fetches the full current guest list for an event. Typically
// (*guest.Service).List.
type Loader func(ctx context.Context, eventID string) ([]guest.Guest, error)

// Snapshot is one wholesale update pushed to a subscriber.
type Snapshot struct {
	EventID string        `json:"event_id"`
	Guests  []guest.Guest `json:"guests"`
}

// Hub fans full-list snapshots out to per-event subscribers. It satisfies
// guest.Notifier so the guest service can trigger pushes after mutations.
//
// Callbacks run on the notifying goroutine and must not block; the SSE layer
// buffers and drops stale snapshots on slow clients.
type Hub struct {
	loader Loader

	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func(Snapshot)
}

func NewHub(loader Loader) *Hub {
	return &Hub{loader: loader, subs: make(map[string]map[int]func(Snapshot))}
}

// Subscribe registers fn for an event and immediately pushes the current
// snapshot. The returned function removes the subscription.
func (h *Hub) Subscribe(ctx context.Context, eventID string, fn func(Snapshot)) (func(), error) {
	snap, err := h.load(ctx, eventID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[int]func(Snapshot))
	}
	h.subs[eventID][id] = fn
	h.mu.Unlock()

	fn(snap)

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[eventID], id)
		if len(h.subs[eventID]) == 0 {
			delete(h.subs, eventID)
		}
	}, nil
}

// LedgerChanged reloads the event's guest list once and pushes it to every
// subscriber. Load failures are logged, not surfaced: the next successful
// mutation will push a fresh snapshot anyway.
func (h *Hub) LedgerChanged(ctx context.Context, eventID string) {
	h.mu.Lock()
	fns := make([]func(Snapshot), 0, len(h.subs[eventID]))
	for _, fn := range h.subs[eventID] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	if len(fns) == 0 {
		return
	}

	snap, err := h.load(ctx, eventID)
	if err != nil {
		logger.From(ctx).Error("live snapshot reload failed", "event_id", eventID, "err", err)
		return
	}
	for _, fn := range fns {
		fn(snap)
	}
}

func (h *Hub) load(ctx context.Context, eventID string) (Snapshot, error) {
	gs, err := h.loader(ctx, eventID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{EventID: eventID, Guests: gs}, nil
}
