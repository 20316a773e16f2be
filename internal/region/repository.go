package region

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("region not found")
	ErrDuplicateName = errors.New("region name already exists")
)

type Repository interface {
	Create(ctx context.Context, r *Region) error
	Update(ctx context.Context, r *Region) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*Region, error)
	GetByName(ctx context.Context, name string) (*Region, error)
	List(ctx context.Context) ([]*Region, error)
}
