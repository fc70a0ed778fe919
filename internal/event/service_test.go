package event

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMemoryRepo(), nil)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return svc
}

func mustCreate(t *testing.T, svc *Service, in NewEvent) Event {
	t.Helper()
	e, err := svc.Create(context.Background(), "owner-1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return e
}

func TestCreate_Validates(t *testing.T) {
	svc := newTestService(t)

	cases := []NewEvent{
		{Kind: KindWedding, StartsAt: time.Now()},         // no title
		{Title: "x", Kind: "party", StartsAt: time.Now()}, // bad kind
		{Title: "x", Kind: KindWedding},                   // no start
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), "owner-1", in); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
}

func TestUpdate_EnforcesOwnership(t *testing.T) {
	svc := newTestService(t)
	e := mustCreate(t, svc, NewEvent{Title: "Wedding", Kind: KindWedding, StartsAt: time.Unix(1800000000, 0)})

	title := "Renamed"
	if _, err := svc.Update(context.Background(), "intruder", e.ID, Patch{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, err := svc.Update(context.Background(), "owner-1", e.ID, Patch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Renamed" {
		t.Fatalf("title not applied: %+v", got)
	}
}

func TestPublicPage_LockedWithoutPIN(t *testing.T) {
	svc := newTestService(t)
	e := mustCreate(t, svc, NewEvent{
		Title: "Wedding", Kind: KindWedding, StartsAt: time.Unix(1800000000, 0),
		Public: true, PIN: "1234", KHQRPayload: "khqr-data",
	})

	page, err := svc.PublicPage(context.Background(), e.ID, "", "1.2.3.4")
	if !errors.Is(err, ErrPINRequired) {
		t.Fatalf("expected ErrPINRequired, got %v", err)
	}
	if !page.PINLocked || page.KHQRPayload != "" {
		t.Fatalf("locked teaser must not leak content: %+v", page)
	}

	if _, err := svc.PublicPage(context.Background(), e.ID, "9999", "1.2.3.4"); !errors.Is(err, ErrPINMismatch) {
		t.Fatalf("expected ErrPINMismatch, got %v", err)
	}

	page, err = svc.PublicPage(context.Background(), e.ID, "1234", "1.2.3.4")
	if err != nil {
		t.Fatalf("correct pin: %v", err)
	}
	if page.KHQRPayload != "khqr-data" {
		t.Fatalf("expected full payload after pin, got %+v", page)
	}
}

func TestPublicPage_HiddenUnlessPublic(t *testing.T) {
	svc := newTestService(t)
	e := mustCreate(t, svc, NewEvent{Title: "Funeral", Kind: KindFuneral, StartsAt: time.Unix(1800000000, 0), Public: false})

	if _, err := svc.PublicPage(context.Background(), e.ID, "", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-public event, got %v", err)
	}
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string) (bool, error) { return false, nil }

func TestPublicPage_AttemptLimiter(t *testing.T) {
	svc := NewService(NewMemoryRepo(), denyLimiter{})
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	e := mustCreate(t, svc, NewEvent{Title: "Wedding", Kind: KindWedding, StartsAt: time.Unix(1800000000, 0), Public: true, PIN: "1234"})

	if _, err := svc.PublicPage(context.Background(), e.ID, "1234", "1.2.3.4"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestSetPIN_ClearUnlocks(t *testing.T) {
	svc := newTestService(t)
	e := mustCreate(t, svc, NewEvent{Title: "Merit", Kind: KindMerit, StartsAt: time.Unix(1800000000, 0), Public: true, PIN: "1234"})

	if err := svc.SetPIN(context.Background(), "owner-1", e.ID, ""); err != nil {
		t.Fatalf("clear pin: %v", err)
	}
	if _, err := svc.PublicPage(context.Background(), e.ID, "", ""); err != nil {
		t.Fatalf("expected unlocked page, got %v", err)
	}
}
