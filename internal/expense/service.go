package expense

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

// Repository is the persistence contract for expense records. Semantics
// match guest.Repository: List is created_at descending, missing ids are
// ErrNotFound.

type Repository interface {
	Insert(ctx context.Context, e Expense) error
	Get(ctx context.Context, eventID, id string) (Expense, error)
	Update(ctx context.Context, e Expense) error
	Delete(ctx context.Context, eventID, id string) error
	List(ctx context.Context, eventID string) ([]Expense, error)
}

var (
	ErrNotFound        = errors.New("expense: not found")
	ErrInvalidArgument = errors.New("expense: invalid argument")
)

// Service owns expense mutations with the same audit contract as the guest
// service: primary write failures propagate, audit failures are swallowed.
type Service struct {
	repo    Repository
	auditor *audit.Service
	clock   func() time.Time
}

func NewService(repo Repository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor, clock: time.Now}
}

func (s *Service) Add(ctx context.Context, actorID, eventID string, in NewExpense) (Expense, error) {
	if eventID == "" {
		return Expense{}, ErrInvalidArgument
	}
	if strings.TrimSpace(in.Name) == "" {
		return Expense{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if in.ActualAmount < 0 {
		return Expense{}, fmt.Errorf("%w: actual amount must be non-negative", ErrInvalidArgument)
	}
	if !validCurrency(in.Currency) {
		return Expense{}, fmt.Errorf("%w: currency must be USD or KHR", ErrInvalidArgument)
	}

	e := Expense{
		ID:            uuid.NewString(),
		EventID:       eventID,
		Name:          in.Name,
		ActualAmount:  in.ActualAmount,
		BudgetAmount:  in.BudgetAmount,
		Currency:      in.Currency,
		PaymentMethod: in.PaymentMethod,
		InvoiceNumber: in.InvoiceNumber,
		Note:          in.Note,
		CreatedAt:     s.clock().UTC(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return Expense{}, err
	}

	details := fmt.Sprintf("Added expense %s of %s %s", e.Name, formatAmount(e.ActualAmount), e.Currency)
	s.recordAudit(ctx, eventID, e.ID, func() error {
		return s.auditor.RecordCreate(ctx, eventID, e.ID, actorID, details, in)
	})
	return e, nil
}

func (s *Service) Update(ctx context.Context, actorID, eventID, id string, p Patch) (Expense, error) {
	if eventID == "" || id == "" {
		return Expense{}, ErrInvalidArgument
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Expense{}, fmt.Errorf("%w: name cannot be blank", ErrInvalidArgument)
	}
	if p.ActualAmount != nil && *p.ActualAmount < 0 {
		return Expense{}, fmt.Errorf("%w: actual amount must be non-negative", ErrInvalidArgument)
	}
	if p.Currency != nil && !validCurrency(*p.Currency) {
		return Expense{}, fmt.Errorf("%w: currency must be USD or KHR", ErrInvalidArgument)
	}

	prior, err := s.repo.Get(ctx, eventID, id)
	if err != nil {
		return Expense{}, err
	}

	merged := p.apply(prior)
	if err := s.repo.Update(ctx, merged); err != nil {
		return Expense{}, err
	}

	details := diffDetails(prior, p)
	s.recordAudit(ctx, eventID, id, func() error {
		return s.auditor.RecordUpdate(ctx, eventID, id, actorID, details, prior, p)
	})
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

	details := fmt.Sprintf("Deleted expense %s", prior.Name)
	s.recordAudit(ctx, eventID, id, func() error {
		return s.auditor.RecordDelete(ctx, eventID, id, actorID, details, prior)
	})
	return nil
}

func (s *Service) Get(ctx context.Context, eventID, id string) (Expense, error) {
	if eventID == "" || id == "" {
		return Expense{}, ErrInvalidArgument
	}
	return s.repo.Get(ctx, eventID, id)
}

func (s *Service) List(ctx context.Context, eventID string) ([]Expense, error) {
	if eventID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.List(ctx, eventID)
}

// diffDetails covers name, actual amount, currency and payment method in a
// stable order.
func diffDetails(old Expense, p Patch) string {
	changes := make([]string, 0, 4)
	if p.Name != nil && *p.Name != old.Name {
		changes = append(changes, fmt.Sprintf("name: %s -> %s", old.Name, *p.Name))
	}
	if p.ActualAmount != nil && *p.ActualAmount != old.ActualAmount {
		changes = append(changes, fmt.Sprintf("actual: %s -> %s", formatAmount(old.ActualAmount), formatAmount(*p.ActualAmount)))
	}
	if p.Currency != nil && *p.Currency != old.Currency {
		changes = append(changes, fmt.Sprintf("currency: %s -> %s", old.Currency, *p.Currency))
	}
	if p.PaymentMethod != nil && *p.PaymentMethod != old.PaymentMethod {
		changes = append(changes, fmt.Sprintf("method: %s -> %s", old.PaymentMethod, *p.PaymentMethod))
	}
	if len(changes) == 0 {
		return "None"
	}
	return strings.Join(changes, ", ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *Service) recordAudit(ctx context.Context, eventID, recordID string, fn func() error) {
	if s.auditor == nil {
		return
	}
	if err := fn(); err != nil {
		logger.From(ctx).Error("audit write failed",
			"event_id", eventID, "record_id", recordID, "err", err)
	}
}
