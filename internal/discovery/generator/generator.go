// Package generator produces ordered candidate email addresses for a person
// at a domain, surfacing any learned domain pattern first.
package generator

import (
	"context"
	"strings"

	"corpintel_backend/internal/discovery/pattern"
	"corpintel_backend/internal/discovery/repository"
	"corpintel_backend/platform/logger"
)

// Generator builds candidate lists. It reads (never writes) the pattern
// store; aside from that lookup it is a pure function of its inputs.
type Generator struct {
	store repository.PatternStore
	log   *logger.Logger
}

// New creates a candidate generator backed by the given pattern store.
func New(store repository.PatternStore, log *logger.Logger) *Generator {
	return &Generator{store: store, log: log}
}

// Generate returns the ordered candidate list for a full name and domain.
//
// Ordering contract: the learned-pattern candidate (if any) occupies index 0,
// followed by the 14 standard corporate templates in fixed priority order,
// with exact-string duplicates skipped. Empty name or domain yields an empty
// list; a single-token name yields exactly one candidate, token@domain.
func (g *Generator) Generate(ctx context.Context, fullName, domain string) []string {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(domain) == "" {
		return []string{}
	}

	domain = strings.ToLower(strings.TrimSpace(domain))
	tokens := pattern.Tokens(fullName)
	if len(tokens) == 0 {
		return []string{}
	}
	if len(tokens) < 2 {
		return []string{tokens[0] + "@" + domain}
	}

	parts := pattern.PartsOf(tokens[0], tokens[len(tokens)-1])

	candidates := make([]string, 0, 15)
	seen := make(map[string]struct{}, 15)

	if learned := g.learnedPattern(ctx, domain); learned != "" {
		priority := pattern.Construct(learned, parts, domain)
		candidates = append(candidates, priority)
		seen[priority] = struct{}{}
		g.log.Debug("learned pattern hit", "domain", domain, "candidate", priority)
	}

	for _, t := range pattern.GenerationOrder() {
		candidate := pattern.Construct(t, parts, domain)
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		candidates = append(candidates, candidate)
	}

	return candidates
}

// learnedPattern looks up the stored template for a domain. Store failures
// degrade to "no pattern": candidate generation must never fail on a
// memoization miss.
func (g *Generator) learnedPattern(ctx context.Context, domain string) pattern.Template {
	learned, err := g.store.GetPattern(ctx, domain)
	if err != nil {
		g.log.Warn("pattern lookup failed", "domain", domain, "error", err)
		return ""
	}
	return learned
}
