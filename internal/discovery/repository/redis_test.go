package repository

import (
	"context"
	"testing"

	"corpintel_backend/internal/discovery/pattern"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	got, err := store.GetPattern(ctx, "acme.io")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty template for unknown domain, got %q", got)
	}

	if err := store.SavePattern(ctx, "acme.io", pattern.InitialDotLast); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err = store.GetPattern(ctx, "acme.io")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != pattern.InitialDotLast {
		t.Fatalf("expected %q, got %q", pattern.InitialDotLast, got)
	}
}

func TestRedisStoreOverwrite(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.SavePattern(ctx, "acme.io", pattern.First); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.SavePattern(ctx, "acme.io", pattern.FirstUscoreLast); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, _ := store.GetPattern(ctx, "acme.io")
	if got != pattern.FirstUscoreLast {
		t.Fatalf("expected %q, got %q", pattern.FirstUscoreLast, got)
	}
}

func TestRedisStoreEmptyTemplateNoop(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.SavePattern(ctx, "acme.io", ""); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, _ := store.GetPattern(ctx, "acme.io")
	if got != "" {
		t.Fatalf("expected no entry, got %q", got)
	}
}
