package repository

import (
	"context"
	"sync"

	"corpintel_backend/internal/discovery/pattern"
)

// MemoryStore is the in-process PatternStore. Pattern memory is volatile and
// resets on restart; a later successful validation simply re-learns it.
type MemoryStore struct {
	mu       sync.RWMutex
	patterns map[string]pattern.Template
}

// NewMemoryStore creates an empty in-memory pattern store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		patterns: make(map[string]pattern.Template),
	}
}

// GetPattern returns the learned template for a domain, or empty when none.
func (s *MemoryStore) GetPattern(_ context.Context, domain string) (pattern.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patterns[domain], nil
}

// SavePattern stores the template for a domain, overwriting any previous one.
func (s *MemoryStore) SavePattern(_ context.Context, domain string, tmpl pattern.Template) error {
	if tmpl == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns[domain] = tmpl
	return nil
}
