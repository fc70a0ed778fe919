package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"banhchi-platform/pkg/dbutil"
)

// PostgresRepo persists events in the events table.
//
// Expected schema:
//   events(id, owner_id, title, kind, description, venue, starts_at, ends_at,
//          banner_url, gallery_urls JSONB, khqr_payload, pin_hash, public,
//          created_at, updated_at)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, e Event) error {
	const q = `
INSERT INTO events (
  id, owner_id, title, kind, description, venue, starts_at, ends_at,
  banner_url, gallery_urls, khqr_payload, pin_hash, public, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15
)
`
	gallery, err := json.Marshal(e.GalleryURLs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q,
		e.ID,
		e.OwnerID,
		e.Title,
		e.Kind,
		e.Description,
		e.Venue,
		e.StartsAt,
		e.EndsAt,
		e.BannerURL,
		gallery,
		e.KHQRPayload,
		e.PINHash,
		e.Public,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Event, error) {
	const q = `
SELECT id, owner_id, title, kind, description, venue, starts_at, ends_at,
       banner_url, gallery_urls, khqr_payload, pin_hash, public, created_at, updated_at
FROM events
WHERE id = $1
`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrNotFound
		}
		return Event{}, err
	}
	return e, nil
}

func (r *PostgresRepo) Update(ctx context.Context, e Event) error {
	const q = `
UPDATE events
SET title = $2, kind = $3, description = $4, venue = $5, starts_at = $6, ends_at = $7,
    banner_url = $8, gallery_urls = $9, khqr_payload = $10, pin_hash = $11, public = $12,
    updated_at = $13
WHERE id = $1
`
	gallery, err := json.Marshal(e.GalleryURLs)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.Title,
		e.Kind,
		e.Description,
		e.Venue,
		e.StartsAt,
		e.EndsAt,
		e.BannerURL,
		gallery,
		e.KHQRPayload,
		e.PINHash,
		e.Public,
		e.UpdatedAt,
	)
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

// Delete removes the event and its ledger sub-collections in one
// transaction; a partially deleted event must never be observable.
func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	return dbutil.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM guests WHERE event_id = $1`,
			`DELETE FROM expenses WHERE event_id = $1`,
			`DELETE FROM content_items WHERE event_id = $1`,
			`DELETE FROM audit_entries WHERE event_id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
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
	})
}

func (r *PostgresRepo) ListByOwner(ctx context.Context, ownerID string) ([]Event, error) {
	const q = `
SELECT id, owner_id, title, kind, description, venue, starts_at, ends_at,
       banner_url, gallery_urls, khqr_payload, pin_hash, public, created_at, updated_at
FROM events
WHERE owner_id = $1
ORDER BY created_at DESC, id
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var e Event
	var gallery []byte
	if err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.Title,
		&e.Kind,
		&e.Description,
		&e.Venue,
		&e.StartsAt,
		&e.EndsAt,
		&e.BannerURL,
		&gallery,
		&e.KHQRPayload,
		&e.PINHash,
		&e.Public,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return Event{}, err
	}
	if len(gallery) > 0 {
		if err := json.Unmarshal(gallery, &e.GalleryURLs); err != nil {
			return Event{}, err
		}
	}
	return e, nil
}
