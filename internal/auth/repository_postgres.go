package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Save(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users
			(id, name, email, phone, password, role,
			 client_type, onboarding_draft_id, iban, is_founder, is_active)
		VALUES ($1, $2, $3, $4, $5, $6,
			NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, user.Password, user.Role,
		user.ClientType, user.OnboardingDraftID, user.IBAN, user.IsFounder, user.IsActive,
	)
	return err
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	row := r.db.QueryRow(ctx, `SELECT 1 FROM users WHERE email=$1 LIMIT 1`, email)

	var exists int
	if err := row.Scan(&exists); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

const userColumns = `
	id, name, email, phone, password, role,
	COALESCE(client_type, ''), COALESCE(onboarding_draft_id, ''),
	COALESCE(iban, ''), is_founder, is_active
`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Password, &user.Role,
		&user.ClientType, &user.OnboardingDraftID, &user.IBAN, &user.IsFounder, &user.IsActive,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id, hashed string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password=$1 WHERE id=$2`, hashed, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id, role string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role=$1 WHERE id=$2`, role, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Phone, &user.Password, &user.Role,
			&user.ClientType, &user.OnboardingDraftID, &user.IBAN, &user.IsFounder, &user.IsActive,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}
