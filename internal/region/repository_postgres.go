package region

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

func (r *PostgresRepository) Create(ctx context.Context, reg *Region) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO regions (name, description, available_lunch, available_dinner)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`,
		reg.Name,
		reg.Description,
		reg.AvailableLunch,
		reg.AvailableDinner,
	).Scan(&reg.ID)
}

func (r *PostgresRepository) Update(ctx context.Context, reg *Region) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE regions SET
			name = $1,
			description = $2,
			available_lunch = $3,
			available_dinner = $4
		WHERE id = $5
	`,
		reg.Name,
		reg.Description,
		reg.AvailableLunch,
		reg.AvailableDinner,
		reg.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Region, error) {
	var reg Region
	err := row.Scan(
		&reg.ID,
		&reg.Name,
		&reg.Description,
		&reg.AvailableLunch,
		&reg.AvailableDinner,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Region, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, name, description, available_lunch, available_dinner
		FROM regions WHERE id = $1
	`, id))
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Region, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, name, description, available_lunch, available_dinner
		FROM regions WHERE name = $1
	`, name))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Region, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, available_lunch, available_dinner
		FROM regions
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Region
	for rows.Next() {
		var reg Region
		if err := rows.Scan(
			&reg.ID,
			&reg.Name,
			&reg.Description,
			&reg.AvailableLunch,
			&reg.AvailableDinner,
		); err != nil {
			return nil, err
		}
		out = append(out, &reg)
	}
	return out, rows.Err()
}
