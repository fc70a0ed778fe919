package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for content items. List is scoped
// by event id; the empty id lists standalone items.

type Repository interface {
	Insert(ctx context.Context, it Item) error
	Get(ctx context.Context, id string) (Item, error)
	Update(ctx context.Context, it Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, eventID string, publishedOnly bool) ([]Item, error)
}

var (
	ErrNotFound        = errors.New("content: not found")
	ErrInvalidArgument = errors.New("content: invalid argument")
)

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, in NewItem) (Item, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Item{}, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if !validKind(in.Kind) {
		return Item{}, fmt.Errorf("%w: kind must be article, agenda or announcement", ErrInvalidArgument)
	}

	now := s.clock().UTC()
	it := Item{
		ID:        uuid.NewString(),
		EventID:   in.EventID,
		Kind:      in.Kind,
		Title:     in.Title,
		Body:      in.Body,
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (Item, error) {
	if id == "" {
		return Item{}, ErrInvalidArgument
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Item{}, fmt.Errorf("%w: title cannot be blank", ErrInvalidArgument)
	}

	prior, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	merged := p.apply(prior)
	merged.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, merged); err != nil {
		return Item{}, err
	}
	return merged, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	if id == "" {
		return Item{}, ErrInvalidArgument
	}
	return s.repo.Get(ctx, id)
}

// ListForEvent returns an event's content; publishedOnly is the public view.
func (s *Service) ListForEvent(ctx context.Context, eventID string, publishedOnly bool) ([]Item, error) {
	if eventID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.List(ctx, eventID, publishedOnly)
}

// ListStandalone returns content not attached to any event.
func (s *Service) ListStandalone(ctx context.Context, publishedOnly bool) ([]Item, error) {
	return s.repo.List(ctx, "", publishedOnly)
}
