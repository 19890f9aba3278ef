// Package events defines the domain events exchanged between modules.
package events

import (
	"corpintel_backend/platform/events"
)

// Event names.
const (
	PatternLearnedName      = "discovery.pattern_learned"
	EnrichmentCompletedName = "enrichment.completed"
)

// PatternLearned is published when a confirmed email reveals the naming
// template a domain uses.
type PatternLearned struct {
	events.BaseEvent
	Domain   string `json:"domain"`
	Template string `json:"template"`
	Email    string `json:"email"`
}

// NewPatternLearned creates a PatternLearned event.
func NewPatternLearned(domain, template, email string) PatternLearned {
	return PatternLearned{
		BaseEvent: events.NewBaseEvent(),
		Domain:    domain,
		Template:  template,
		Email:     email,
	}
}

// EventName returns the event identifier.
func (e PatternLearned) EventName() string { return PatternLearnedName }

// EnrichmentCompleted is published when a full company enrichment scan
// finishes and a report is available.
type EnrichmentCompleted struct {
	events.BaseEvent
	ScanID string `json:"scan_id"`
	Domain string `json:"domain"`
	Report any    `json:"report"`
}

// NewEnrichmentCompleted creates an EnrichmentCompleted event.
func NewEnrichmentCompleted(scanID, domain string, report any) EnrichmentCompleted {
	return EnrichmentCompleted{
		BaseEvent: events.NewBaseEvent(),
		ScanID:    scanID,
		Domain:    domain,
		Report:    report,
	}
}

// EventName returns the event identifier.
func (e EnrichmentCompleted) EventName() string { return EnrichmentCompletedName }
