package guest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"banhchi-platform/internal/audit"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo, *audit.MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	auditRepo := audit.NewMemoryRepo()
	svc := NewService(repo, audit.NewService(auditRepo), nil)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return svc, repo, auditRepo
}

func TestAdd_ValidatesInput(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Add(context.Background(), "u", "ev", NewGuest{Name: "  "}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for blank name, got %v", err)
	}
	if _, err := svc.Add(context.Background(), "u", "ev", NewGuest{Name: "Sok", AmountUSD: -5}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative amount, got %v", err)
	}
	if _, err := svc.Add(context.Background(), "u", "", NewGuest{Name: "Sok"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for missing event, got %v", err)
	}
}

func TestAdd_WritesRecordAndAuditEntry(t *testing.T) {
	svc, repo, auditRepo := newTestService(t)

	g, err := svc.Add(context.Background(), "admin-1", "ev", NewGuest{
		Name: "Sok", AmountUSD: 100, AmountKHR: 40000, PaymentMethod: "cash", Location: "Hall 1",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if g.ID == "" || g.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned id and created_at: %+v", g)
	}

	stored, err := repo.Get(context.Background(), "ev", g.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.AmountUSD != 100 || stored.AmountKHR != 40000 {
		t.Fatalf("amounts not persisted: %+v", stored)
	}

	entries := auditRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Action != audit.ActionCreate || e.RecordID != g.ID || e.ActorID != "admin-1" {
		t.Fatalf("unexpected audit entry: %+v", e)
	}
	if e.Details != "Added guest Sok with $100, 40000៛" {
		t.Fatalf("unexpected details: %q", e.Details)
	}
	if e.OldValue != nil || len(e.NewValue) == 0 {
		t.Fatalf("CREATE snapshots wrong: old=%s new=%s", e.OldValue, e.NewValue)
	}
}

func TestUpdate_DiffIsDeterministic(t *testing.T) {
	svc, _, auditRepo := newTestService(t)

	g, err := svc.Add(context.Background(), "u", "ev", NewGuest{
		Name: "A", AmountUSD: 5, AmountKHR: 0, PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	usd := 10.0
	if _, err := svc.Update(context.Background(), "u", "ev", g.ID, Patch{AmountUSD: &usd}); err != nil {
		t.Fatalf("update: %v", err)
	}

	entries := auditRepo.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	e := entries[1]
	if e.Action != audit.ActionUpdate {
		t.Fatalf("expected UPDATE, got %s", e.Action)
	}
	if e.Details != "usd: 5 -> 10" {
		t.Fatalf("expected exactly one usd mention, got %q", e.Details)
	}

	// old snapshot is the full prior record, new is the submitted patch only
	var old Guest
	if err := json.Unmarshal(e.OldValue, &old); err != nil {
		t.Fatalf("old snapshot: %v", err)
	}
	if old.AmountUSD != 5 || old.Name != "A" {
		t.Fatalf("old snapshot wrong: %+v", old)
	}
	var patch map[string]any
	if err := json.Unmarshal(e.NewValue, &patch); err != nil {
		t.Fatalf("new snapshot: %v", err)
	}
	if len(patch) != 1 || patch["amount_usd"] != 10.0 {
		t.Fatalf("new snapshot should be the sparse patch, got %v", patch)
	}
}

func TestUpdate_NoChangeReadsNone(t *testing.T) {
	svc, _, auditRepo := newTestService(t)

	g, _ := svc.Add(context.Background(), "u", "ev", NewGuest{Name: "A", AmountUSD: 5, PaymentMethod: "cash"})
	same := 5.0
	if _, err := svc.Update(context.Background(), "u", "ev", g.ID, Patch{AmountUSD: &same}); err != nil {
		t.Fatalf("update: %v", err)
	}

	entries := auditRepo.Entries()
	if entries[1].Details != "None" {
		t.Fatalf("expected None, got %q", entries[1].Details)
	}
}

func TestUpdate_OrderStableAcrossFields(t *testing.T) {
	svc, _, auditRepo := newTestService(t)

	g, _ := svc.Add(context.Background(), "u", "ev", NewGuest{Name: "A", AmountUSD: 5, AmountKHR: 2000, PaymentMethod: "cash"})

	name := "B"
	khr := 4000.0
	method := "ABA Bank"
	if _, err := svc.Update(context.Background(), "u", "ev", g.ID, Patch{PaymentMethod: &method, AmountKHR: &khr, Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := auditRepo.Entries()[1].Details
	want := "name: A -> B, khr: 2000 -> 4000, method: cash -> ABA Bank"
	if got != want {
		t.Fatalf("diff order unstable:\n got %q\nwant %q", got, want)
	}
}

func TestDelete_CapturesPriorSnapshot(t *testing.T) {
	svc, repo, auditRepo := newTestService(t)

	g, _ := svc.Add(context.Background(), "u", "ev", NewGuest{Name: "A", AmountUSD: 100, PaymentMethod: "cash"})
	if err := svc.Delete(context.Background(), "u", "ev", g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.Get(context.Background(), "ev", g.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected hard delete, got %v", err)
	}

	e := auditRepo.Entries()[1]
	if e.Action != audit.ActionDelete || e.NewValue != nil {
		t.Fatalf("unexpected DELETE entry: %+v", e)
	}
	var old Guest
	if err := json.Unmarshal(e.OldValue, &old); err != nil {
		t.Fatalf("old snapshot: %v", err)
	}
	if old.Name != "A" {
		t.Fatalf("expected prior name in snapshot, got %q", old.Name)
	}
}

func TestMutations_PropagateNotFound(t *testing.T) {
	svc, _, auditRepo := newTestService(t)

	if _, err := svc.Update(context.Background(), "u", "ev", "missing", Patch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "u", "ev", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(auditRepo.Entries()) != 0 {
		t.Fatalf("failed mutations must not produce audit entries")
	}
}

// failingAuditRepo simulates a broken audit store.
type failingAuditRepo struct{}

func (failingAuditRepo) Append(ctx context.Context, e audit.Entry) error {
	return errors.New("audit store down")
}

func (failingAuditRepo) List(ctx context.Context, eventID string) ([]audit.Entry, error) {
	return nil, errors.New("audit store down")
}

func TestAuditFailureDoesNotFailMutation(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, audit.NewService(failingAuditRepo{}), nil)

	g, err := svc.Add(context.Background(), "u", "ev", NewGuest{Name: "Sok", AmountUSD: 1, PaymentMethod: "cash"})
	if err != nil {
		t.Fatalf("primary write must succeed despite audit failure: %v", err)
	}
	if _, err := repo.Get(context.Background(), "ev", g.ID); err != nil {
		t.Fatalf("record must be persisted: %v", err)
	}
	if err := svc.Delete(context.Background(), "u", "ev", g.ID); err != nil {
		t.Fatalf("delete must succeed despite audit failure: %v", err)
	}
}

func TestAuditHistoryIsCoherent(t *testing.T) {
	svc, _, auditRepo := newTestService(t)
	ctx := context.Background()

	g, _ := svc.Add(ctx, "u", "ev", NewGuest{Name: "A", AmountUSD: 5, PaymentMethod: "cash"})
	usd := 10.0
	if _, err := svc.Update(ctx, "u", "ev", g.ID, Patch{AmountUSD: &usd}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(ctx, "u", "ev", g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	entries := auditRepo.Entries() // append order == timestamp ascending
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// UPDATE's old snapshot must equal the state produced by CREATE.
	var updOld Guest
	if err := json.Unmarshal(entries[1].OldValue, &updOld); err != nil {
		t.Fatalf("update old: %v", err)
	}
	if updOld.AmountUSD != 5 {
		t.Fatalf("update old snapshot should match created state, got %+v", updOld)
	}

	// DELETE's old snapshot must equal the state produced by UPDATE.
	var delOld Guest
	if err := json.Unmarshal(entries[2].OldValue, &delOld); err != nil {
		t.Fatalf("delete old: %v", err)
	}
	if delOld.AmountUSD != 10 {
		t.Fatalf("delete old snapshot should reflect the update, got %+v", delOld)
	}
}
