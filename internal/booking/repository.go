package booking

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("booking not found")

// Repository defines the data-access contract for bookings.
// All operations within one mutating service call run against a
// transactionally consistent store.
type Repository interface {
	Insert(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id int, status string) error
	GetByID(ctx context.Context, id int) (*Booking, error)

	// ListByUser returns all of a user's bookings ordered by
	// (delivery_date, time_block).
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)

	// ListActiveInWeek returns a user's active bookings with delivery_date
	// in [weekStart, weekEnd], excluding excludeID when non-zero.
	ListActiveInWeek(ctx context.Context, userID string, weekStart, weekEnd time.Time, excludeID int) ([]*Booking, error)

	// HasActiveOnDate reports whether the user already holds an active
	// booking for the given delivery date.
	HasActiveOnDate(ctx context.Context, userID string, date time.Time) (bool, error)

	// ListActiveByDate returns every client's active bookings for one
	// delivery day, ordered by (time_block, id). Kitchen/export view.
	ListActiveByDate(ctx context.Context, date time.Time) ([]*Booking, error)

	// ListActiveBetween returns every client's active bookings in a date
	// range, ordered by (delivery_date, time_block). Admin view.
	ListActiveBetween(ctx context.Context, start, end time.Time) ([]*Booking, error)

	// ListAll returns every booking ordered by (delivery_date, time_block).
	ListAll(ctx context.Context) ([]*Booking, error)
}
