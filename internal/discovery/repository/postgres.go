package repository

import (
	"context"
	"errors"

	"corpintel_backend/internal/discovery/pattern"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore backs the pattern store with the email_patterns table for
// durable pattern memory. Same contract as the other backings.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed pattern store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// GetPattern returns the learned template for a domain, or empty when none.
func (s *PostgresStore) GetPattern(ctx context.Context, domain string) (pattern.Template, error) {
	var tmpl string
	err := s.pool.QueryRow(ctx,
		`SELECT template FROM email_patterns WHERE domain = $1`,
		domain,
	).Scan(&tmpl)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return pattern.Template(tmpl), nil
}

// SavePattern upserts the template for a domain (last write wins).
func (s *PostgresStore) SavePattern(ctx context.Context, domain string, tmpl pattern.Template) error {
	if tmpl == "" {
		return nil
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO email_patterns (domain, template, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (domain)
		 DO UPDATE SET template = EXCLUDED.template, updated_at = now()`,
		domain, string(tmpl),
	)
	return err
}
