package artifacts

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	entries := []Artifact{
		{Kind: "diagram", Title: "Rondo", Path: "/out/rondo.png", Tool: "render_tactical_diagram"},
		{Kind: "pdf", Title: "U12 Plan", Path: "/out/plan.pdf", Tool: "compile_to_pdf"},
		{Kind: "html", Title: "U12 Plan", Path: "/out/plan.html", Tool: "compile_to_html"},
	}
	for _, a := range entries {
		if err := store.Record(ctx, a); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d artifacts, want 3", len(recent))
	}
	// Newest first
	if recent[0].Kind != "html" || recent[2].Kind != "diagram" {
		t.Errorf("unexpected order: %s, %s, %s", recent[0].Kind, recent[1].Kind, recent[2].Kind)
	}
	if recent[0].ID == 0 || recent[0].CreatedAt.IsZero() {
		t.Errorf("missing id or timestamp: %+v", recent[0])
	}
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Artifact{Kind: "pdf", Path: "/out/x.pdf"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("got %d artifacts, want 2", len(recent))
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(ctx, Artifact{Kind: "diagram", Path: "/out/d.png"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("got %d artifacts after reopen, want 1", len(recent))
	}
}

func TestNilStoreIsNoop(t *testing.T) {
	var store *Store
	ctx := context.Background()
	if err := store.Record(ctx, Artifact{Kind: "pdf", Path: "/x"}); err != nil {
		t.Errorf("nil Record: %v", err)
	}
	recent, err := store.Recent(ctx, 5)
	if err != nil || recent != nil {
		t.Errorf("nil Recent = %v, %v", recent, err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
