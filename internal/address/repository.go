package address

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("address not found")

// Repository defines the data-access contract. Lookups are always scoped to
// the owning user so ownership is enforced at the data layer too.
type Repository interface {
	Create(ctx context.Context, addr *Address) error
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, id int, userID string) error
	GetByID(ctx context.Context, id int, userID string) (*Address, error)
	ListByUser(ctx context.Context, userID string) ([]*Address, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	ClearDefault(ctx context.Context, userID string) error
}
