package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, e Event) error
	Get(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Event, error)
}

// AttemptLimiter throttles PIN verification attempts per event+client key.
// The Redis implementation lives in pkg/redisutil; nil disables throttling.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

var (
	ErrNotFound        = errors.New("event: not found")
	ErrInvalidArgument = errors.New("event: invalid argument")
	ErrForbidden       = errors.New("event: forbidden")
	ErrPINRequired     = errors.New("event: pin required")
	ErrPINMismatch     = errors.New("event: pin mismatch")
	ErrTooManyAttempts = errors.New("event: too many pin attempts")
)

type Service struct {
	repo    Repository
	limiter AttemptLimiter
	clock   func() time.Time
}

func NewService(repo Repository, limiter AttemptLimiter) *Service {
	return &Service{repo: repo, limiter: limiter, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, ownerID string, in NewEvent) (Event, error) {
	if ownerID == "" {
		return Event{}, ErrInvalidArgument
	}
	if strings.TrimSpace(in.Title) == "" {
		return Event{}, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if !validKind(in.Kind) {
		return Event{}, fmt.Errorf("%w: kind must be wedding, funeral or merit", ErrInvalidArgument)
	}
	if in.StartsAt.IsZero() {
		return Event{}, fmt.Errorf("%w: starts_at is required", ErrInvalidArgument)
	}

	now := s.clock().UTC()
	e := Event{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Kind:        in.Kind,
		Description: in.Description,
		Venue:       in.Venue,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		KHQRPayload: in.KHQRPayload,
		Public:      in.Public,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.PIN != "" {
		hash, err := argon2id.CreateHash(in.PIN, argon2id.DefaultParams)
		if err != nil {
			return Event{}, fmt.Errorf("event: hashing pin: %w", err)
		}
		e.PINHash = hash
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, p Patch) (Event, error) {
	if id == "" {
		return Event{}, ErrInvalidArgument
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Event{}, fmt.Errorf("%w: title cannot be blank", ErrInvalidArgument)
	}
	if p.Kind != nil && !validKind(*p.Kind) {
		return Event{}, fmt.Errorf("%w: unknown kind", ErrInvalidArgument)
	}

	prior, err := s.ownedEvent(ctx, ownerID, id)
	if err != nil {
		return Event{}, err
	}

	merged := p.apply(prior)
	merged.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, merged); err != nil {
		return Event{}, err
	}
	return merged, nil
}

// SetPIN replaces or clears the public-page PIN. An empty pin unlocks.
func (s *Service) SetPIN(ctx context.Context, ownerID, id, pin string) error {
	e, err := s.ownedEvent(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if pin == "" {
		e.PINHash = ""
	} else {
		hash, err := argon2id.CreateHash(pin, argon2id.DefaultParams)
		if err != nil {
			return fmt.Errorf("event: hashing pin: %w", err)
		}
		e.PINHash = hash
	}
	e.UpdatedAt = s.clock().UTC()
	return s.repo.Update(ctx, e)
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.ownedEvent(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	if id == "" {
		return Event{}, ErrInvalidArgument
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Event, error) {
	if ownerID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// PublicPage returns the attendee-facing payload. For a PIN-locked event the
// caller must supply the PIN (verified against the stored hash); clientKey
// feeds the attempt limiter, typically the client IP.
func (s *Service) PublicPage(ctx context.Context, id, pin, clientKey string) (PublicPage, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return PublicPage{}, err
	}
	if !e.Public {
		return PublicPage{}, ErrNotFound
	}

	if e.PINLocked() {
		if pin == "" {
			// Locked teaser: enough to render the lock screen.
			return PublicPage{ID: e.ID, Title: e.Title, Kind: e.Kind, PINLocked: true}, ErrPINRequired
		}
		if err := s.verifyPIN(ctx, e, pin, clientKey); err != nil {
			return PublicPage{}, err
		}
	}

	countdown := int64(time.Until(e.StartsAt).Seconds())
	if countdown < 0 {
		countdown = 0
	}
	return PublicPage{
		ID:               e.ID,
		Title:            e.Title,
		Kind:             e.Kind,
		Description:      e.Description,
		Venue:            e.Venue,
		StartsAt:         e.StartsAt.Format(time.RFC3339),
		CountdownSeconds: countdown,
		BannerURL:        e.BannerURL,
		GalleryURLs:      e.GalleryURLs,
		KHQRPayload:      e.KHQRPayload,
		PINLocked:        e.PINLocked(),
	}, nil
}

func (s *Service) verifyPIN(ctx context.Context, e Event, pin, clientKey string) error {
	if s.limiter != nil && clientKey != "" {
		ok, err := s.limiter.Allow(ctx, "pin:"+e.ID+":"+clientKey)
		if err != nil {
			// A broken limiter must not lock attendees out.
			ok = true
		}
		if !ok {
			return ErrTooManyAttempts
		}
	}
	match, err := argon2id.ComparePasswordAndHash(pin, e.PINHash)
	if err != nil {
		return fmt.Errorf("event: verifying pin: %w", err)
	}
	if !match {
		return ErrPINMismatch
	}
	return nil
}

func (s *Service) ownedEvent(ctx context.Context, ownerID, id string) (Event, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if ownerID != "" && e.OwnerID != ownerID {
		return Event{}, ErrForbidden
	}
	return e, nil
}
