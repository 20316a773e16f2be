package onboarding

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
// Create draft + cells + selections (single transaction)
// --------------------------------------------------
func (r *PostgresRepository) CreateDraft(
	ctx context.Context,
	draft *Draft,
	cells []BehaviorCell,
	selections []FirstWeekSelection,
) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO onboarding_drafts (id, week_start, client_type, iban)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		RETURNING created_at
	`,
		draft.ID,
		draft.WeekStart,
		draft.ClientType,
		draft.IBAN,
	).Scan(&draft.CreatedAt)
	if err != nil {
		return err
	}

	for _, cell := range cells {
		if _, err := tx.Exec(ctx, `
			INSERT INTO onboarding_behavior_cells (draft_id, weekday_index, slot, pref)
			VALUES ($1,$2,$3,$4)
		`, cell.DraftID, cell.WeekdayIndex, cell.Slot, cell.Pref); err != nil {
			return err
		}
	}

	for _, sel := range selections {
		if _, err := tx.Exec(ctx, `
			INSERT INTO onboarding_first_week_selections (
				draft_id, weekday_index, delivery_date, meals,
				dish_choice, time_block, address_id
			)
			VALUES ($1,$2,$3,$4,NULLIF($5,''),NULLIF($6,''),$7)
		`,
			sel.DraftID,
			sel.WeekdayIndex,
			sel.DeliveryDate,
			sel.Meals,
			sel.DishChoice,
			sel.TimeBlock,
			sel.AddressID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) GetDraft(ctx context.Context, id string) (*Draft, error) {
	var d Draft
	err := r.db.QueryRow(ctx, `
		SELECT id, week_start, COALESCE(client_type, ''), COALESCE(iban, ''), created_at
		FROM onboarding_drafts
		WHERE id = $1
	`, id).Scan(&d.ID, &d.WeekStart, &d.ClientType, &d.IBAN, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) SetClientType(ctx context.Context, id, clientType string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE onboarding_drafts SET client_type = $1 WHERE id = $2
	`, clientType, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetIBAN(ctx context.Context, id, iban string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE onboarding_drafts SET iban = $1 WHERE id = $2
	`, iban, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListCells(ctx context.Context, draftID string) ([]BehaviorCell, error) {
	rows, err := r.db.Query(ctx, `
		SELECT draft_id, weekday_index, slot, pref
		FROM onboarding_behavior_cells
		WHERE draft_id = $1
		ORDER BY weekday_index, slot
	`, draftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BehaviorCell
	for rows.Next() {
		var c BehaviorCell
		if err := rows.Scan(&c.DraftID, &c.WeekdayIndex, &c.Slot, &c.Pref); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListSelections(ctx context.Context, draftID string) ([]FirstWeekSelection, error) {
	rows, err := r.db.Query(ctx, `
		SELECT draft_id, weekday_index, delivery_date, meals,
		       COALESCE(dish_choice, ''), COALESCE(time_block, ''), address_id
		FROM onboarding_first_week_selections
		WHERE draft_id = $1
		ORDER BY weekday_index
	`, draftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FirstWeekSelection
	for rows.Next() {
		var s FirstWeekSelection
		if err := rows.Scan(
			&s.DraftID,
			&s.WeekdayIndex,
			&s.DeliveryDate,
			&s.Meals,
			&s.DishChoice,
			&s.TimeBlock,
			&s.AddressID,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
