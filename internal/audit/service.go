package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit entries.
//
// It MUST be append-only. No Update/Delete methods are provided by design.
// List returns entries for one event ordered by created_at descending
// (newest first, matching the admin activity view).

type Repository interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, eventID string) ([]Entry, error)
}

// Service records ledger mutations for administrative review.
//
// IMPORTANT:
// - Callers must treat audit logging as best-effort. The ledger write is the
//   source of truth; an audit failure must never block or roll it back.
//   The swallowing happens at the caller, not here.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEntry = errors.New("audit: invalid entry")

func (s *Service) Append(ctx context.Context, e Entry) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.EventID == "" {
		return ErrInvalidEntry
	}
	switch e.Action {
	case ActionCreate, ActionUpdate, ActionDelete:
	default:
		return ErrInvalidEntry
	}

	if e.ActorID == "" {
		e.ActorID = ActorAnonymous
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// RecordCreate logs a CREATE with the submitted record as the new snapshot.
func (s *Service) RecordCreate(ctx context.Context, eventID, recordID, actorID, details string, newValue any) error {
	return s.Append(ctx, Entry{
		EventID:  eventID,
		RecordID: recordID,
		Action:   ActionCreate,
		Details:  details,
		NewValue: marshalSnapshot(newValue),
		ActorID:  actorID,
	})
}

// RecordUpdate logs an UPDATE. oldValue is the full prior record; newValue is
// the patch as submitted, not the merged result.
func (s *Service) RecordUpdate(ctx context.Context, eventID, recordID, actorID, details string, oldValue, newValue any) error {
	return s.Append(ctx, Entry{
		EventID:  eventID,
		RecordID: recordID,
		Action:   ActionUpdate,
		Details:  details,
		OldValue: marshalSnapshot(oldValue),
		NewValue: marshalSnapshot(newValue),
		ActorID:  actorID,
	})
}

// RecordDelete logs a DELETE with the removed record as the old snapshot.
func (s *Service) RecordDelete(ctx context.Context, eventID, recordID, actorID, details string, oldValue any) error {
	return s.Append(ctx, Entry{
		EventID:  eventID,
		RecordID: recordID,
		Action:   ActionDelete,
		Details:  details,
		OldValue: marshalSnapshot(oldValue),
		ActorID:  actorID,
	})
}

func (s *Service) List(ctx context.Context, eventID string) ([]Entry, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	if eventID == "" {
		return nil, ErrInvalidEntry
	}
	return s.repo.List(ctx, eventID)
}

// marshalSnapshot serializes a snapshot value. Snapshots are advisory, so a
// marshal failure degrades to nil rather than failing the entry.
func marshalSnapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
