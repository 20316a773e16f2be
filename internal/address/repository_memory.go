package address

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	addrs  map[int]*Address
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{addrs: make(map[int]*Address), nextID: 1}
}

func (r *InMemoryRepository) Create(_ context.Context, addr *Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr.ID = r.nextID
	r.nextID++
	cp := *addr
	r.addrs[addr.ID] = &cp
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, addr *Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.addrs[addr.ID]
	if !ok || existing.UserID != addr.UserID {
		return ErrNotFound
	}
	cp := *addr
	r.addrs[addr.ID] = &cp
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.addrs[id]
	if !ok || existing.UserID != userID {
		return ErrNotFound
	}
	delete(r.addrs, id)
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int, userID string) (*Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.addrs[id]
	if !ok || a.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Address
	for _, a := range r.addrs {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) CountByUser(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.addrs {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) ClearDefault(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.addrs {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	return nil
}
