package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookingColumns = `
	id, user_id, address_id, delivery_date, time_block,
	meals, dish_choice, status, created_at, updated_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.AddressID,
		&b.DeliveryDate,
		&b.TimeBlock,
		&b.Meals,
		&b.DishChoice,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]*Booking, error) {
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Insert(ctx context.Context, b *Booking) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO bookings (
			user_id, address_id, delivery_date, time_block,
			meals, dish_choice, status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at
	`,
		b.UserID,
		b.AddressID,
		b.DeliveryDate,
		b.TimeBlock,
		b.Meals,
		b.DishChoice,
		b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PostgresRepository) Update(ctx context.Context, b *Booking) error {
	return r.db.QueryRow(ctx, `
		UPDATE bookings SET
			address_id = $1,
			delivery_date = $2,
			time_block = $3,
			meals = $4,
			dish_choice = $5,
			updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`,
		b.AddressID,
		b.DeliveryDate,
		b.TimeBlock,
		b.Meals,
		b.DishChoice,
		b.ID,
	).Scan(&b.UpdatedAt)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE id = $1
	`, id))
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE user_id = $1
		ORDER BY delivery_date, time_block
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PostgresRepository) ListActiveInWeek(
	ctx context.Context,
	userID string,
	weekStart, weekEnd time.Time,
	excludeID int,
) ([]*Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE user_id = $1
		  AND delivery_date >= $2
		  AND delivery_date <= $3
		  AND status = 'active'
		  AND ($4 = 0 OR id <> $4)
		ORDER BY delivery_date, time_block
	`, userID, weekStart, weekEnd, excludeID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PostgresRepository) HasActiveOnDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE user_id = $1 AND delivery_date = $2 AND status = 'active'
	`, userID, date).Scan(&n)
	return n > 0, err
}

func (r *PostgresRepository) ListActiveByDate(ctx context.Context, date time.Time) ([]*Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE delivery_date = $1 AND status = 'active'
		ORDER BY time_block, id
	`, date)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PostgresRepository) ListActiveBetween(ctx context.Context, start, end time.Time) ([]*Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE delivery_date >= $1 AND delivery_date <= $2 AND status = 'active'
		ORDER BY delivery_date, time_block
	`, start, end)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		ORDER BY delivery_date, time_block
	`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}
