package guest

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is a mutex-guarded in-memory repository for tests and early
// development. It enforces event scoping on every operation.

type MemoryRepo struct {
	mu     sync.Mutex
	guests map[string]Guest // key: id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{guests: make(map[string]Guest)}
}

func (r *MemoryRepo) Insert(ctx context.Context, g Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guests[g.ID] = g
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, eventID, id string) (Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guests[id]
	if !ok || g.EventID != eventID {
		return Guest{}, ErrNotFound
	}
	return g, nil
}

func (r *MemoryRepo) Update(ctx context.Context, g Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.guests[g.ID]
	if !ok || cur.EventID != g.EventID {
		return ErrNotFound
	}
	r.guests[g.ID] = g
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, eventID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guests[id]
	if !ok || g.EventID != eventID {
		return ErrNotFound
	}
	delete(r.guests, id)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, eventID string) ([]Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Guest, 0)
	for _, g := range r.guests {
		if g.EventID == eventID {
			out = append(out, g)
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
