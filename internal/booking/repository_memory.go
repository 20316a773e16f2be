package booking

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	bookings map[int]*Booking
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{bookings: make(map[int]*Booking), nextID: 1}
}

func sortByDateAndBlock(out []*Booking) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DeliveryDate.Equal(out[j].DeliveryDate) {
			return out[i].DeliveryDate.Before(out[j].DeliveryDate)
		}
		return out[i].TimeBlock < out[j].TimeBlock
	})
}

func (r *InMemoryRepository) Insert(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now().UTC()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, id int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sortByDateAndBlock(out)
	return out, nil
}

func (r *InMemoryRepository) ListActiveInWeek(
	_ context.Context,
	userID string,
	weekStart, weekEnd time.Time,
	excludeID int,
) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Booking
	for _, b := range r.bookings {
		if b.UserID != userID || b.Status != StatusActive {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if b.DeliveryDate.Before(weekStart) || b.DeliveryDate.After(weekEnd) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sortByDateAndBlock(out)
	return out, nil
}

func (r *InMemoryRepository) HasActiveOnDate(_ context.Context, userID string, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.UserID == userID && b.Status == StatusActive && b.DeliveryDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) ListActiveByDate(_ context.Context, date time.Time) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Booking
	for _, b := range r.bookings {
		if b.Status == StatusActive && b.DeliveryDate.Equal(date) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TimeBlock != out[j].TimeBlock {
			return out[i].TimeBlock < out[j].TimeBlock
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) ListActiveBetween(_ context.Context, start, end time.Time) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Booking
	for _, b := range r.bookings {
		if b.Status != StatusActive {
			continue
		}
		if b.DeliveryDate.Before(start) || b.DeliveryDate.After(end) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sortByDateAndBlock(out)
	return out, nil
}

func (r *InMemoryRepository) ListAll(_ context.Context) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		cp := *b
		out = append(out, &cp)
	}
	sortByDateAndBlock(out)
	return out, nil
}
