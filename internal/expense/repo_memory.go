package expense

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is a mutex-guarded in-memory repository for tests and early
// development.

type MemoryRepo struct {
	mu       sync.Mutex
	expenses map[string]Expense // key: id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{expenses: make(map[string]Expense)}
}

func (r *MemoryRepo) Insert(ctx context.Context, e Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[e.ID] = e
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, eventID, id string) (Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.EventID != eventID {
		return Expense{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) Update(ctx context.Context, e Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.expenses[e.ID]
	if !ok || cur.EventID != e.EventID {
		return ErrNotFound
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, eventID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.EventID != eventID {
		return ErrNotFound
	}
	delete(r.expenses, id)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, eventID string) ([]Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Expense, 0)
	for _, e := range r.expenses {
		if e.EventID == eventID {
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
