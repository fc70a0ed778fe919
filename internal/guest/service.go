package guest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"banhchi-platform/internal/audit"
	"banhchi-platform/pkg/logger"

	"github.com/google/uuid"
)

// Repository is the persistence contract for guest records.
//
// List returns the event's guests ordered by created_at descending.
// Get/Update/Delete must return ErrNotFound for ids missing from the event's
// collection (including read-before-write races with a concurrent delete).

type Repository interface {
	Insert(ctx context.Context, g Guest) error
	Get(ctx context.Context, eventID, id string) (Guest, error)
	Update(ctx context.Context, g Guest) error
	Delete(ctx context.Context, eventID, id string) error
	List(ctx context.Context, eventID string) ([]Guest, error)
}

// Notifier is told after every successful mutation so live subscribers can
// be pushed a fresh snapshot. Implementations must not block the caller.
type Notifier interface {
	LedgerChanged(ctx context.Context, eventID string)
}

var (
	ErrNotFound        = errors.New("guest: not found")
	ErrInvalidArgument = errors.New("guest: invalid argument")
)

// Service owns guest mutations and their audit trail.
//
// Write asymmetry (deliberate):
//   - The primary record write is authoritative: failures propagate and no
//     audit entry is written for a failed mutation.
//   - The audit write is best-effort: failures are logged and swallowed, and
//     never roll back or block the primary write.
type Service struct {
	repo     Repository
	auditor  *audit.Service
	notifier Notifier
	clock    func() time.Time
}

// NewService wires the guest service. auditor and notifier may be nil, in
// which case the corresponding side channel is skipped.
func NewService(repo Repository, auditor *audit.Service, notifier Notifier) *Service {
	return &Service{repo: repo, auditor: auditor, notifier: notifier, clock: time.Now}
}

func (s *Service) Add(ctx context.Context, actorID, eventID string, in NewGuest) (Guest, error) {
	if eventID == "" {
		return Guest{}, ErrInvalidArgument
	}
	if strings.TrimSpace(in.Name) == "" {
		return Guest{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if in.AmountUSD < 0 || in.AmountKHR < 0 {
		return Guest{}, fmt.Errorf("%w: amounts must be non-negative", ErrInvalidArgument)
	}

	g := Guest{
		ID:            uuid.NewString(),
		EventID:       eventID,
		Name:          in.Name,
		AmountUSD:     in.AmountUSD,
		AmountKHR:     in.AmountKHR,
		PaymentMethod: in.PaymentMethod,
		Location:      in.Location,
		Note:          in.Note,
		CreatedAt:     s.clock().UTC(),
	}
	if err := s.repo.Insert(ctx, g); err != nil {
		return Guest{}, err
	}

	details := fmt.Sprintf("Added guest %s with $%s, %s៛",
		g.Name, formatAmount(g.AmountUSD), formatAmount(g.AmountKHR))
	s.recordAudit(ctx, eventID, g.ID, func() error {
		return s.auditor.RecordCreate(ctx, eventID, g.ID, actorID, details, in)
	})
	s.notifyChanged(ctx, eventID)
	return g, nil
}

func (s *Service) Update(ctx context.Context, actorID, eventID, id string, p Patch) (Guest, error) {
	if eventID == "" || id == "" {
		return Guest{}, ErrInvalidArgument
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Guest{}, fmt.Errorf("%w: name cannot be blank", ErrInvalidArgument)
	}
	if (p.AmountUSD != nil && *p.AmountUSD < 0) || (p.AmountKHR != nil && *p.AmountKHR < 0) {
		return Guest{}, fmt.Errorf("%w: amounts must be non-negative", ErrInvalidArgument)
	}

	prior, err := s.repo.Get(ctx, eventID, id)
	if err != nil {
		return Guest{}, err
	}

	merged := p.apply(prior)
	if err := s.repo.Update(ctx, merged); err != nil {
		return Guest{}, err
	}

	details := diffDetails(prior, p)
	s.recordAudit(ctx, eventID, id, func() error {
		return s.auditor.RecordUpdate(ctx, eventID, id, actorID, details, prior, p)
	})
	s.notifyChanged(ctx, eventID)
	return merged, nil
}

func (s *Service) Delete(ctx context.Context, actorID, eventID, id string) error {
	if eventID == "" || id == "" {
		return ErrInvalidArgument
	}

	prior, err := s.repo.Get(ctx, eventID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, eventID, id); err != nil {
		return err
	}

	details := fmt.Sprintf("Deleted guest %s", prior.Name)
	s.recordAudit(ctx, eventID, id, func() error {
		return s.auditor.RecordDelete(ctx, eventID, id, actorID, details, prior)
	})
	s.notifyChanged(ctx, eventID)
	return nil
}

func (s *Service) Get(ctx context.Context, eventID, id string) (Guest, error) {
	if eventID == "" || id == "" {
		return Guest{}, ErrInvalidArgument
	}
	return s.repo.Get(ctx, eventID, id)
}

func (s *Service) List(ctx context.Context, eventID string) ([]Guest, error) {
	if eventID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.List(ctx, eventID)
}

// diffDetails builds the human-readable update summary. The field order is
// stable (name, usd, khr, method); only supplied-and-changed fields appear.
// "None" means the patch changed nothing worth reporting.
func diffDetails(old Guest, p Patch) string {
	changes := make([]string, 0, 4)
	if p.Name != nil && *p.Name != old.Name {
		changes = append(changes, fmt.Sprintf("name: %s -> %s", old.Name, *p.Name))
	}
	if p.AmountUSD != nil && *p.AmountUSD != old.AmountUSD {
		changes = append(changes, fmt.Sprintf("usd: %s -> %s", formatAmount(old.AmountUSD), formatAmount(*p.AmountUSD)))
	}
	if p.AmountKHR != nil && *p.AmountKHR != old.AmountKHR {
		changes = append(changes, fmt.Sprintf("khr: %s -> %s", formatAmount(old.AmountKHR), formatAmount(*p.AmountKHR)))
	}
	if p.PaymentMethod != nil && *p.PaymentMethod != old.PaymentMethod {
		changes = append(changes, fmt.Sprintf("method: %s -> %s", old.PaymentMethod, *p.PaymentMethod))
	}
	if len(changes) == 0 {
		return "None"
	}
	return strings.Join(changes, ", ")
}

// formatAmount renders a monetary amount without trailing zeros (5, 10.5).
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// recordAudit runs fn and swallows its error. The audit trail is an advisory
// side channel and must never fail the primary mutation.
func (s *Service) recordAudit(ctx context.Context, eventID, recordID string, fn func() error) {
	if s.auditor == nil {
		return
	}
	if err := fn(); err != nil {
		logger.From(ctx).Error("audit write failed",
			"event_id", eventID, "record_id", recordID, "err", err)
	}
}

func (s *Service) notifyChanged(ctx context.Context, eventID string) {
	if s.notifier != nil {
		s.notifier.LedgerChanged(ctx, eventID)
	}
}
