package guest

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists guest records in the guests table.
//
// Expected schema:
//   guests(id, event_id, name, amount_usd NUMERIC, amount_khr NUMERIC,
//          payment_method, location, note, created_at)
//
// Concurrency note: record updates are last-write-wins; the service reads
// before mutating, so a concurrent delete surfaces as ErrNotFound.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, g Guest) error {
	const q = `
INSERT INTO guests (
  id, event_id, name, amount_usd, amount_khr, payment_method, location, note, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9
)
`
	_, err := r.db.ExecContext(ctx, q,
		g.ID,
		g.EventID,
		g.Name,
		g.AmountUSD,
		g.AmountKHR,
		g.PaymentMethod,
		g.Location,
		g.Note,
		g.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, eventID, id string) (Guest, error) {
	const q = `
SELECT id, event_id, name, amount_usd, amount_khr, payment_method, location, note, created_at
FROM guests
WHERE event_id = $1 AND id = $2
`
	var g Guest
	if err := r.db.QueryRowContext(ctx, q, eventID, id).Scan(
		&g.ID,
		&g.EventID,
		&g.Name,
		&g.AmountUSD,
		&g.AmountKHR,
		&g.PaymentMethod,
		&g.Location,
		&g.Note,
		&g.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Guest{}, ErrNotFound
		}
		return Guest{}, err
	}
	return g, nil
}

func (r *PostgresRepo) Update(ctx context.Context, g Guest) error {
	// created_at is immutable and deliberately not in the SET list.
	const q = `
UPDATE guests
SET name = $3, amount_usd = $4, amount_khr = $5, payment_method = $6, location = $7, note = $8
WHERE event_id = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q,
		g.EventID,
		g.ID,
		g.Name,
		g.AmountUSD,
		g.AmountKHR,
		g.PaymentMethod,
		g.Location,
		g.Note,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) Delete(ctx context.Context, eventID, id string) error {
	const q = `DELETE FROM guests WHERE event_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, eventID, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) List(ctx context.Context, eventID string) ([]Guest, error) {
	const q = `
SELECT id, event_id, name, amount_usd, amount_khr, payment_method, location, note, created_at
FROM guests
WHERE event_id = $1
ORDER BY created_at DESC, id
`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Guest, 0)
	for rows.Next() {
		var g Guest
		if err := rows.Scan(
			&g.ID,
			&g.EventID,
			&g.Name,
			&g.AmountUSD,
			&g.AmountKHR,
			&g.PaymentMethod,
			&g.Location,
			&g.Note,
			&g.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
