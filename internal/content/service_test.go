package content

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMemoryRepo())
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return svc
}

func TestCreate_ValidatesKindAndTitle(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(context.Background(), NewItem{Kind: KindArticle}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for missing title, got %v", err)
	}
	if _, err := svc.Create(context.Background(), NewItem{Kind: "poster", Title: "x"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad kind, got %v", err)
	}
}

func TestListForEvent_PublishedOnlyView(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, NewItem{EventID: "ev", Kind: KindAgenda, Title: "Morning procession", Published: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, NewItem{EventID: "ev", Kind: KindAnnouncement, Title: "Draft", Published: false}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := svc.ListForEvent(ctx, "ev", false)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 items, got %d (%v)", len(all), err)
	}
	public, err := svc.ListForEvent(ctx, "ev", true)
	if err != nil || len(public) != 1 {
		t.Fatalf("expected 1 published item, got %d (%v)", len(public), err)
	}
	if public[0].Title != "Morning procession" {
		t.Fatalf("unexpected item: %+v", public[0])
	}
}

func TestStandaloneContentIsSeparate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, NewItem{Kind: KindArticle, Title: "How banhchi works", Published: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, NewItem{EventID: "ev", Kind: KindArticle, Title: "Attached", Published: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	standalone, err := svc.ListStandalone(ctx, true)
	if err != nil || len(standalone) != 1 {
		t.Fatalf("expected 1 standalone item, got %d (%v)", len(standalone), err)
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	it, _ := svc.Create(ctx, NewItem{Kind: KindArticle, Title: "Draft title", Body: "body"})
	published := true
	got, err := svc.Update(ctx, it.ID, Patch{Published: &published})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.Published || got.Title != "Draft title" || got.Body != "body" {
		t.Fatalf("partial merge broke unrelated fields: %+v", got)
	}
}
