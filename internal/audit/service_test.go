package audit

import (
	"context"
	"testing"
)

func TestService_AppendRequiresEventAndAction(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Entry{Action: ActionCreate}); err == nil {
		t.Fatalf("expected error")
	}
	if err := svc.Append(context.Background(), Entry{EventID: "ev"}); err == nil {
		t.Fatalf("expected error")
	}
	if err := svc.Append(context.Background(), Entry{EventID: "ev", Action: "RENAME"}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestService_AnonymousActorSentinel(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.RecordCreate(context.Background(), "ev", "g1", "", "Added guest Sok", map[string]any{"name": "Sok"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	entries := repo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry")
	}
	if entries[0].ActorID != ActorAnonymous {
		t.Fatalf("expected anonymous actor, got %q", entries[0].ActorID)
	}
	if entries[0].OldValue != nil {
		t.Fatalf("CREATE must not carry an old snapshot")
	}
	if len(entries[0].NewValue) == 0 {
		t.Fatalf("CREATE must carry the new snapshot")
	}
}

func TestService_RecordDeleteKeepsOldSnapshotOnly(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.RecordDelete(context.Background(), "ev", "g1", "admin-1", "Deleted guest Sok", map[string]any{"name": "Sok"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	entries := repo.Entries()
	if entries[0].NewValue != nil {
		t.Fatalf("DELETE must not carry a new snapshot")
	}
	if len(entries[0].OldValue) == 0 {
		t.Fatalf("DELETE must carry the prior snapshot")
	}
	if entries[0].ActorID != "admin-1" {
		t.Fatalf("expected actor captured, got %q", entries[0].ActorID)
	}
}
