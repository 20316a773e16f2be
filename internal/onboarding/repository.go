package onboarding

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("onboarding draft not found")

// Repository defines the data-access contract for onboarding state.
// CreateDraft must persist the draft, its 14 behaviour cells and its 7
// selections atomically: all or nothing.
type Repository interface {
	CreateDraft(ctx context.Context, draft *Draft, cells []BehaviorCell, selections []FirstWeekSelection) error
	GetDraft(ctx context.Context, id string) (*Draft, error)
	SetClientType(ctx context.Context, id, clientType string) error
	SetIBAN(ctx context.Context, id, iban string) error
	ListCells(ctx context.Context, draftID string) ([]BehaviorCell, error)
	ListSelections(ctx context.Context, draftID string) ([]FirstWeekSelection, error)
}
