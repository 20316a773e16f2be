package menu

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	days   map[int]*MenuDay // keyed by day_number
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{days: make(map[int]*MenuDay), nextID: 1}
}

func (r *InMemoryRepository) Upsert(_ context.Context, day *MenuDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.days[day.DayNumber]; ok {
		day.ID = existing.ID
	} else {
		day.ID = r.nextID
		r.nextID++
	}
	cp := *day
	r.days[day.DayNumber] = &cp
	return nil
}

func (r *InMemoryRepository) GetByDayNumber(_ context.Context, dayNumber int) (*MenuDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.days[dayNumber]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*MenuDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*MenuDay, 0, len(r.days))
	for _, d := range r.days {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber < out[j].DayNumber })
	return out, nil
}
