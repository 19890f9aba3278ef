package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// expiryBuffer refreshes tokens slightly before they actually expire so an
// in-flight push never carries a token that dies mid-request.
const expiryBuffer = 5 * time.Minute

// tokenManager caches the CRM bearer token and refreshes it on demand.
// Concurrent refreshes collapse into a single upstream call.
type tokenManager struct {
	obtainURL string
	email     string
	password  string
	client    *http.Client

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	group singleflight.Group
}

func newTokenManager(obtainURL, email, password string, client *http.Client) *tokenManager {
	return &tokenManager{
		obtainURL: obtainURL,
		email:     email,
		password:  password,
		client:    client,
	}
}

type tokenResponse struct {
	Access    string `json:"access"`
	ExpiresIn int    `json:"expires_in"`
}

// Token returns a valid bearer token, refreshing if the cached one is near
// expiry.
func (m *tokenManager) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	token, expiresAt := m.token, m.expiresAt
	m.mu.RUnlock()

	if token != "" && time.Until(expiresAt) > expiryBuffer {
		return token, nil
	}

	fresh, err, _ := m.group.Do("token", func() (interface{}, error) {
		return m.obtain(ctx)
	})
	if err != nil {
		return "", err
	}
	return fresh.(string), nil
}

func (m *tokenManager) obtain(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"email":    m.email,
		"password": m.password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.obtainURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var parsed tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if parsed.Access == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	lifetime := time.Duration(parsed.ExpiresIn) * time.Second
	if lifetime <= 0 {
		lifetime = time.Hour
	}

	m.mu.Lock()
	m.token = parsed.Access
	m.expiresAt = time.Now().Add(lifetime)
	m.mu.Unlock()

	return parsed.Access, nil
}
