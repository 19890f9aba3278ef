// Package service orchestrates email discovery: candidate generation,
// streaming validation, and pattern learning.
package service

import (
	"context"
	"strings"

	"corpintel_backend/internal/discovery/client"
	"corpintel_backend/internal/discovery/generator"
	"corpintel_backend/internal/discovery/pattern"
	"corpintel_backend/internal/discovery/repository"
	domainevents "corpintel_backend/internal/events"
	"corpintel_backend/platform/events"
	"corpintel_backend/platform/logger"
)

// EmailValidator is the streaming validation dependency. A nil result means
// no usable address was found or the validator was unreachable.
type EmailValidator interface {
	Validate(ctx context.Context, emails []string) *client.ValidationResult
}

// Service implements the email discovery pipeline.
type Service struct {
	generator *generator.Generator
	validator EmailValidator
	store     repository.PatternStore
	bus       events.Bus
	log       *logger.Logger
}

// New creates a discovery service.
func New(
	gen *generator.Generator,
	validator EmailValidator,
	store repository.PatternStore,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		generator: gen,
		validator: validator,
		store:     store,
		bus:       bus,
		log:       log,
	}
}

// Discovery is the outcome of a full discovery run for one person.
type Discovery struct {
	Email      string
	Status     string
	Score      int
	Candidates int
}

// DiscoverEmail runs the full pipeline: generate candidates, stream them
// through the validator, and on a confirmed hit learn the domain's template
// for future runs. A nil result means no usable address was found.
//
// Pattern learning is strictly best-effort. A store write failure is logged
// and the confirmed address is still returned.
func (s *Service) DiscoverEmail(ctx context.Context, fullName, domain string) *Discovery {
	domain = strings.ToLower(strings.TrimSpace(domain))

	candidates := s.generator.Generate(ctx, fullName, domain)
	if len(candidates) == 0 {
		return nil
	}

	result := s.validator.Validate(ctx, candidates)
	if result == nil {
		s.log.Info("no deliverable email found", "domain", domain, "candidates", len(candidates))
		return nil
	}

	if result.Score == 100 {
		s.learnPattern(ctx, result.Email, fullName, domain)
	}

	return &Discovery{
		Email:      result.Email,
		Status:     result.Status,
		Score:      result.Score,
		Candidates: len(candidates),
	}
}

// GenerateCandidates exposes candidate generation without validation.
func (s *Service) GenerateCandidates(ctx context.Context, fullName, domain string) []string {
	return s.generator.Generate(ctx, fullName, domain)
}

// GetPattern returns the learned template for a domain, empty when unknown.
func (s *Service) GetPattern(ctx context.Context, domain string) (pattern.Template, error) {
	return s.store.GetPattern(ctx, strings.ToLower(strings.TrimSpace(domain)))
}

// learnPattern deduces the template behind a confirmed address and memoizes
// it. Only verified (score 100) addresses reach this point; risky hits must
// never contaminate pattern memory.
func (s *Service) learnPattern(ctx context.Context, email, fullName, domain string) {
	tokens := pattern.Tokens(fullName)
	if len(tokens) < 2 {
		return
	}

	tmpl, ok := pattern.Deduce(email, tokens[0], tokens[len(tokens)-1])
	if !ok {
		s.log.Debug("confirmed email matches no known template", "email", email, "domain", domain)
		return
	}

	if err := s.store.SavePattern(ctx, domain, tmpl); err != nil {
		s.log.Warn("pattern save failed", "domain", domain, "template", string(tmpl), "error", err)
		return
	}

	s.log.Info("pattern learned", "domain", domain, "template", string(tmpl))
	s.bus.Publish(ctx, domainevents.NewPatternLearned(domain, string(tmpl), email))
}
