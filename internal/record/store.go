package record

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Owner(ctx context.Context, userID uuid.UUID) (*Owner, error) {
	var o Owner
	err := r.Pool.QueryRow(ctx,
		`SELECT id, expense_ids, income_ids FROM users WHERE id = $1`,
		userID,
	).Scan(&o.ID, &o.ExpenseIDs, &o.IncomeIDs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Insert persists a new record and appends its id to the owner's reference
// list. Both writes run in one transaction so a crash cannot orphan the
// record.
func (r *Repository) Insert(ctx context.Context, k Kind, ownerID uuid.UUID, rec *Record) error {
	return pgx.BeginFunc(ctx, r.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO `+k.Table()+` (title, description, amount, tag, currency, exchanged_amount)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, created_at`,
			rec.Title, rec.Description, rec.Amount, rec.Tag, rec.Currency, rec.ExchangedAmount,
		).Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET `+k.RefColumn()+` = array_append(`+k.RefColumn()+`, $1) WHERE id = $2`,
			rec.ID, ownerID,
		)
		return err
	})
}

func (r *Repository) Get(ctx context.Context, k Kind, id uuid.UUID) (*Record, error) {
	var rec Record
	err := r.Pool.QueryRow(ctx,
		`SELECT id, title, description, amount, tag, currency, exchanged_amount, created_at
		 FROM `+k.Table()+` WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Amount, &rec.Tag, &rec.Currency, &rec.ExchangedAmount, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) Update(ctx context.Context, k Kind, rec *Record) error {
	ct, err := r.Pool.Exec(ctx,
		`UPDATE `+k.Table()+`
		 SET title = $1, description = $2, amount = $3, tag = $4, currency = $5, exchanged_amount = $6
		 WHERE id = $7`,
		rec.Title, rec.Description, rec.Amount, rec.Tag, rec.Currency, rec.ExchangedAmount, rec.ID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record and its owner reference in one transaction, so
// a dangling reference cannot be left behind.
func (r *Repository) Delete(ctx context.Context, k Kind, ownerID, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.Pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `DELETE FROM `+k.Table()+` WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET `+k.RefColumn()+` = array_remove(`+k.RefColumn()+`, $1) WHERE id = $2`,
			id, ownerID,
		)
		return err
	})
}

func (r *Repository) ListByIDs(ctx context.Context, k Kind, ids []uuid.UUID) ([]Record, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, title, description, amount, tag, currency, exchanged_amount, created_at
		 FROM `+k.Table()+`
		 WHERE id = ANY($1)
		 ORDER BY created_at`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Amount, &rec.Tag, &rec.Currency, &rec.ExchangedAmount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
