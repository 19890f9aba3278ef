package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func tokenServer(t *testing.T, calls *int32, expiresIn int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		if creds["email"] != "bot@crm.io" || creds["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		n := atomic.AddInt32(calls, 1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access":     "token-" + string(rune('a'+n-1)),
			"expires_in": expiresIn,
		})
	}))
}

func TestTokenCachedUntilNearExpiry(t *testing.T) {
	var calls int32
	srv := tokenServer(t, &calls, 3600)
	defer srv.Close()

	m := newTokenManager(srv.URL, "bot@crm.io", "hunter2", srv.Client())

	first, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("first token failed: %v", err)
	}
	second, err := m.Token(context.Background())
	if err != nil {
		t.Fatalf("second token failed: %v", err)
	}

	if first != second {
		t.Fatalf("expected cached token reused, got %q then %q", first, second)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected single upstream call, got %d", calls)
	}
}

func TestTokenRefreshedWhenNearExpiry(t *testing.T) {
	var calls int32
	// Lifetime shorter than the expiry buffer forces a refresh every call.
	srv := tokenServer(t, &calls, 60)
	defer srv.Close()

	m := newTokenManager(srv.URL, "bot@crm.io", "hunter2", srv.Client())

	if _, err := m.Token(context.Background()); err != nil {
		t.Fatalf("first token failed: %v", err)
	}
	if _, err := m.Token(context.Background()); err != nil {
		t.Fatalf("second token failed: %v", err)
	}

	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected refresh for near-expiry token, got %d calls", calls)
	}
}

func TestTokenBadCredentials(t *testing.T) {
	var calls int32
	srv := tokenServer(t, &calls, 3600)
	defer srv.Close()

	m := newTokenManager(srv.URL, "bot@crm.io", "wrong", srv.Client())

	if _, err := m.Token(context.Background()); err == nil {
		t.Fatalf("expected error for rejected credentials")
	}
}

func TestTokenDefaultLifetime(t *testing.T) {
	var calls int32
	srv := tokenServer(t, &calls, 0)
	defer srv.Close()

	m := newTokenManager(srv.URL, "bot@crm.io", "hunter2", srv.Client())

	if _, err := m.Token(context.Background()); err != nil {
		t.Fatalf("token failed: %v", err)
	}

	m.mu.RLock()
	remaining := time.Until(m.expiresAt)
	m.mu.RUnlock()

	if remaining < 50*time.Minute {
		t.Fatalf("expected default one-hour lifetime, got %v remaining", remaining)
	}
}
