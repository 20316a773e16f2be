package auth

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, id, hashed string) error
	UpdateRole(ctx context.Context, id, role string) error
	List(ctx context.Context) ([]*User, error)
}
