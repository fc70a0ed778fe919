package content

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepo persists content items in the content_items table.
//
// Expected schema:
//   content_items(id, event_id, kind, title, body, published, created_at, updated_at)
// with event_id = '' for standalone items.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, it Item) error {
	const q = `
INSERT INTO content_items (
  id, event_id, kind, title, body, published, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8
)
`
	_, err := r.db.ExecContext(ctx, q,
		it.ID,
		it.EventID,
		it.Kind,
		it.Title,
		it.Body,
		it.Published,
		it.CreatedAt,
		it.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Item, error) {
	const q = `
SELECT id, event_id, kind, title, body, published, created_at, updated_at
FROM content_items
WHERE id = $1
`
	var it Item
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&it.ID,
		&it.EventID,
		&it.Kind,
		&it.Title,
		&it.Body,
		&it.Published,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (r *PostgresRepo) Update(ctx context.Context, it Item) error {
	const q = `
UPDATE content_items
SET title = $2, body = $3, published = $4, updated_at = $5
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q, it.ID, it.Title, it.Body, it.Published, it.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM content_items WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context, eventID string, publishedOnly bool) ([]Item, error) {
	const q = `
SELECT id, event_id, kind, title, body, published, created_at, updated_at
FROM content_items
WHERE event_id = $1 AND ($2 = false OR published = true)
ORDER BY created_at DESC, id
`
	rows, err := r.db.QueryContext(ctx, q, eventID, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.EventID,
			&it.Kind,
			&it.Title,
			&it.Body,
			&it.Published,
			&it.CreatedAt,
			&it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
