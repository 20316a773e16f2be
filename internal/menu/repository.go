package menu

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("menu day not found")

// Repository defines the data-access contract for the rotation menu.
// Service depends ONLY on this interface.
type Repository interface {
	Upsert(ctx context.Context, day *MenuDay) error
	GetByDayNumber(ctx context.Context, dayNumber int) (*MenuDay, error)
	List(ctx context.Context) ([]*MenuDay, error)
}
