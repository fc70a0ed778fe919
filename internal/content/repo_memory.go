package content

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is a mutex-guarded in-memory repository for tests and early
// development.

type MemoryRepo struct {
	mu    sync.Mutex
	items map[string]Item
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Item)}
}

func (r *MemoryRepo) Insert(ctx context.Context, it Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID] = it
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (r *MemoryRepo) Update(ctx context.Context, it Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	r.items[it.ID] = it
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, eventID string, publishedOnly bool) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Item, 0)
	for _, it := range r.items {
		if it.EventID != eventID {
			continue
		}
		if publishedOnly && !it.Published {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
