package expense

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists expense records in the expenses table.
//
// Expected schema:
//   expenses(id, event_id, name, actual_amount NUMERIC, budget_amount NUMERIC,
//            currency, payment_method, invoice_number, note, created_at)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, e Expense) error {
	const q = `
INSERT INTO expenses (
  id, event_id, name, actual_amount, budget_amount, currency, payment_method, invoice_number, note, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.EventID,
		e.Name,
		e.ActualAmount,
		e.BudgetAmount,
		e.Currency,
		e.PaymentMethod,
		e.InvoiceNumber,
		e.Note,
		e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, eventID, id string) (Expense, error) {
	const q = `
SELECT id, event_id, name, actual_amount, budget_amount, currency, payment_method, invoice_number, note, created_at
FROM expenses
WHERE event_id = $1 AND id = $2
`
	var e Expense
	if err := r.db.QueryRowContext(ctx, q, eventID, id).Scan(
		&e.ID,
		&e.EventID,
		&e.Name,
		&e.ActualAmount,
		&e.BudgetAmount,
		&e.Currency,
		&e.PaymentMethod,
		&e.InvoiceNumber,
		&e.Note,
		&e.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Expense{}, ErrNotFound
		}
		return Expense{}, err
	}
	return e, nil
}

func (r *PostgresRepo) Update(ctx context.Context, e Expense) error {
	const q = `
UPDATE expenses
SET name = $3, actual_amount = $4, budget_amount = $5, currency = $6, payment_method = $7, invoice_number = $8, note = $9
WHERE event_id = $1 AND id = $2
`
	res, err := r.db.ExecContext(ctx, q,
		e.EventID,
		e.ID,
		e.Name,
		e.ActualAmount,
		e.BudgetAmount,
		e.Currency,
		e.PaymentMethod,
		e.InvoiceNumber,
		e.Note,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) Delete(ctx context.Context, eventID, id string) error {
	const q = `DELETE FROM expenses WHERE event_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, q, eventID, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PostgresRepo) List(ctx context.Context, eventID string) ([]Expense, error) {
	const q = `
SELECT id, event_id, name, actual_amount, budget_amount, currency, payment_method, invoice_number, note, created_at
FROM expenses
WHERE event_id = $1
ORDER BY created_at DESC, id
`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Expense, 0)
	for rows.Next() {
		var e Expense
		if err := rows.Scan(
			&e.ID,
			&e.EventID,
			&e.Name,
			&e.ActualAmount,
			&e.BudgetAmount,
			&e.Currency,
			&e.PaymentMethod,
			&e.InvoiceNumber,
			&e.Note,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
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
