package event

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is a mutex-guarded in-memory repository for tests and early
// development.

type MemoryRepo struct {
	mu     sync.Mutex
	events map[string]Event
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{events: make(map[string]Event)}
}

func (r *MemoryRepo) Insert(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = e
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) Update(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return ErrNotFound
	}
	r.events[e.ID] = e
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0)
	for _, e := range r.events {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
