package onboarding

import (
	"context"
	"sync"
	"time"
)

type draftRecord struct {
	draft      Draft
	cells      []BehaviorCell
	selections []FirstWeekSelection
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	drafts map[string]*draftRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{drafts: make(map[string]*draftRecord)}
}

func (r *InMemoryRepository) CreateDraft(
	_ context.Context,
	draft *Draft,
	cells []BehaviorCell,
	selections []FirstWeekSelection,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft.CreatedAt = time.Now().UTC()

	rec := &draftRecord{draft: *draft}
	rec.cells = append(rec.cells, cells...)
	rec.selections = append(rec.selections, selections...)
	r.drafts[draft.ID] = rec
	return nil
}

func (r *InMemoryRepository) GetDraft(_ context.Context, id string) (*Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := rec.draft
	return &cp, nil
}

func (r *InMemoryRepository) SetClientType(_ context.Context, id, clientType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.drafts[id]
	if !ok {
		return ErrNotFound
	}
	rec.draft.ClientType = clientType
	return nil
}

func (r *InMemoryRepository) SetIBAN(_ context.Context, id, iban string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.drafts[id]
	if !ok {
		return ErrNotFound
	}
	rec.draft.IBAN = iban
	return nil
}

func (r *InMemoryRepository) ListCells(_ context.Context, draftID string) ([]BehaviorCell, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.drafts[draftID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]BehaviorCell, len(rec.cells))
	copy(out, rec.cells)
	return out, nil
}

func (r *InMemoryRepository) ListSelections(_ context.Context, draftID string) ([]FirstWeekSelection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.drafts[draftID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]FirstWeekSelection, len(rec.selections))
	copy(out, rec.selections)
	return out, nil
}
