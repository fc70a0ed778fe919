package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo persists audit entries in the audit_entries table.
//
// Expected schema:
//   audit_entries(id, event_id, record_id, action, details,
//                 old_value JSONB NULL, new_value JSONB NULL,
//                 actor_id, created_at)
// with an INSERT-only policy.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Entry) error {
	const q = `
INSERT INTO audit_entries (
  id, event_id, record_id, action, details, old_value, new_value, actor_id, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.EventID,
		e.RecordID,
		e.Action,
		e.Details,
		nullableJSON(e.OldValue),
		nullableJSON(e.NewValue),
		e.ActorID,
		e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, eventID string) ([]Entry, error) {
	const q = `
SELECT id, event_id, record_id, action, details, old_value, new_value, actor_id, created_at
FROM audit_entries
WHERE event_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var oldV, newV []byte
		if err := rows.Scan(
			&e.ID,
			&e.EventID,
			&e.RecordID,
			&e.Action,
			&e.Details,
			&oldV,
			&newV,
			&e.ActorID,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.OldValue = oldV
		e.NewValue = newV
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
