package address

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

func (r *PostgresRepository) Create(ctx context.Context, addr *Address) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO addresses (
			user_id, label, line1, line2, city, postal_code,
			region_id, notes, is_default
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		addr.UserID,
		addr.Label,
		addr.Line1,
		addr.Line2,
		addr.City,
		addr.PostalCode,
		addr.RegionID,
		addr.Notes,
		addr.IsDefault,
	).Scan(&addr.ID)
}

func (r *PostgresRepository) Update(ctx context.Context, addr *Address) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE addresses SET
			label = $1,
			line1 = $2,
			line2 = $3,
			city = $4,
			postal_code = $5,
			region_id = $6,
			notes = $7,
			is_default = $8
		WHERE id = $9 AND user_id = $10
	`,
		addr.Label,
		addr.Line1,
		addr.Line2,
		addr.City,
		addr.PostalCode,
		addr.RegionID,
		addr.Notes,
		addr.IsDefault,
		addr.ID,
		addr.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int, userID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM addresses WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int, userID string) (*Address, error) {
	var a Address
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, label, line1, line2, city, postal_code,
		       region_id, notes, is_default
		FROM addresses
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.Label,
		&a.Line1,
		&a.Line2,
		&a.City,
		&a.PostalCode,
		&a.RegionID,
		&a.Notes,
		&a.IsDefault,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Address, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, label, line1, line2, city, postal_code,
		       region_id, notes, is_default
		FROM addresses
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Label,
			&a.Line1,
			&a.Line2,
			&a.City,
			&a.PostalCode,
			&a.RegionID,
			&a.Notes,
			&a.IsDefault,
		); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM addresses WHERE user_id = $1
	`, userID).Scan(&n)
	return n, err
}

func (r *PostgresRepository) ClearDefault(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE addresses SET is_default = FALSE WHERE user_id = $1
	`, userID)
	return err
}
