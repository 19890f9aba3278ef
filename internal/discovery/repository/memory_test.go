package repository

import (
	"context"
	"testing"

	"corpintel_backend/internal/discovery/pattern"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.GetPattern(ctx, "acme.io")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty template for unknown domain, got %q", got)
	}

	if err := store.SavePattern(ctx, "acme.io", pattern.FirstDotLast); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err = store.GetPattern(ctx, "acme.io")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != pattern.FirstDotLast {
		t.Fatalf("expected %q, got %q", pattern.FirstDotLast, got)
	}
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SavePattern(ctx, "acme.io", pattern.First); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.SavePattern(ctx, "acme.io", pattern.InitialLast); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, _ := store.GetPattern(ctx, "acme.io")
	if got != pattern.InitialLast {
		t.Fatalf("expected %q, got %q", pattern.InitialLast, got)
	}
}

func TestMemoryStoreIgnoresEmptyTemplate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SavePattern(ctx, "acme.io", pattern.First); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.SavePattern(ctx, "acme.io", ""); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, _ := store.GetPattern(ctx, "acme.io")
	if got != pattern.First {
		t.Fatalf("expected empty save to be a no-op, got %q", got)
	}
}
