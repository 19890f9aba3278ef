// Package repository provides pattern store backings for learned
// email-naming templates.
package repository

import (
	"context"

	"corpintel_backend/internal/discovery/pattern"
)

// PatternStore is memoized, lookup-by-key knowledge of which local-part
// template a domain uses. At most one template per domain; writes are
// last-write-wins; entries are never deleted.
//
// GetPattern returns the empty template for unknown domains. SavePattern is
// a no-op when the template is empty.
type PatternStore interface {
	GetPattern(ctx context.Context, domain string) (pattern.Template, error)
	SavePattern(ctx context.Context, domain string, tmpl pattern.Template) error
}
