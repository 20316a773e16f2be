package region

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu      sync.RWMutex
	nextID  int
	regions map[int]*Region
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{regions: make(map[int]*Region), nextID: 1}
}

func (r *InMemoryRepository) Create(_ context.Context, reg *Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg.ID = r.nextID
	r.nextID++
	cp := *reg
	r.regions[reg.ID] = &cp
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, reg *Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.regions[reg.ID]; !ok {
		return ErrNotFound
	}
	cp := *reg
	r.regions[reg.ID] = &cp
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.regions[id]; !ok {
		return ErrNotFound
	}
	delete(r.regions, id)
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (*Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.regions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r *InMemoryRepository) GetByName(_ context.Context, name string) (*Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.regions {
		if reg.Name == name {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Region, 0, len(r.regions))
	for _, reg := range r.regions {
		cp := *reg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
