package audit

import (
	"encoding/json"
	"time"
)

// Entry is an immutable, append-only audit record for one ledger mutation.
//
// Invariants:
// - Entries are never updated or deleted.
// - event_id is required; every entry is scoped to one event's ledger.
// - Snapshots are opaque JSON kept for administrative review; nothing in the
//   system reconstructs state from them.
//
// Storage recommendation (Postgres):
// - Table audit_entries with an INSERT-only policy.
// - Optional: trigger to prevent UPDATE/DELETE.

type Entry struct {
	ID      string `json:"id" db:"id"`
	EventID string `json:"event_id" db:"event_id"`

	// RecordID is the mutated guest/expense id. Empty for bulk or
	// non-record-scoped actions.
	RecordID string `json:"record_id,omitempty" db:"record_id"`

	Action Action `json:"action" db:"action"`

	// Details is a short human-readable summary (e.g. the field diff of an
	// update) for the admin activity view.
	Details string `json:"details,omitempty" db:"details"`

	// OldValue is the full prior record snapshot; nil for CREATE.
	OldValue json.RawMessage `json:"old_value,omitempty" db:"old_value"`
	// NewValue is the new record or the submitted patch; nil for DELETE.
	NewValue json.RawMessage `json:"new_value,omitempty" db:"new_value"`

	// ActorID is the acting user, or "anonymous" when no identity was present.
	ActorID string `json:"actor_id" db:"actor_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// ActorAnonymous is recorded when a mutation carries no authenticated user.
const ActorAnonymous = "anonymous"
