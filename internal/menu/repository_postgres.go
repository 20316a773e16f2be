package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Upsert rotation day
// --------------------------------------------------
func (r *PostgresRepository) Upsert(ctx context.Context, day *MenuDay) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO menu_days (day_number, dish_a, dish_b, calories_a, calories_b)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (day_number) DO UPDATE SET
			dish_a = EXCLUDED.dish_a,
			dish_b = EXCLUDED.dish_b,
			calories_a = EXCLUDED.calories_a,
			calories_b = EXCLUDED.calories_b
		RETURNING id
	`,
		day.DayNumber,
		day.DishA,
		day.DishB,
		day.CaloriesA,
		day.CaloriesB,
	).Scan(&day.ID)
}

// --------------------------------------------------
// Get by rotation day number
// --------------------------------------------------
func (r *PostgresRepository) GetByDayNumber(ctx context.Context, dayNumber int) (*MenuDay, error) {
	var d MenuDay
	err := r.db.QueryRow(ctx, `
		SELECT id, day_number, dish_a, dish_b, calories_a, calories_b
		FROM menu_days
		WHERE day_number = $1
	`, dayNumber).Scan(
		&d.ID,
		&d.DayNumber,
		&d.DishA,
		&d.DishB,
		&d.CaloriesA,
		&d.CaloriesB,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// --------------------------------------------------
// List full rotation
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context) ([]*MenuDay, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, day_number, dish_a, dish_b, calories_a, calories_b
		FROM menu_days
		ORDER BY day_number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*MenuDay
	for rows.Next() {
		var d MenuDay
		if err := rows.Scan(
			&d.ID,
			&d.DayNumber,
			&d.DishA,
			&d.DishB,
			&d.CaloriesA,
			&d.CaloriesB,
		); err != nil {
			return nil, err
		}
		days = append(days, &d)
	}
	return days, rows.Err()
}
