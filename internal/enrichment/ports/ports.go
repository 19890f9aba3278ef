// Package ports declares the collaborator interfaces the enrichment
// orchestrator depends on. Adapters in internal/adapters satisfy them so the
// orchestrator never imports other bounded contexts directly.
package ports

import (
	"context"

	"corpintel_backend/internal/analysis"
	"corpintel_backend/internal/infrastructure"
	"corpintel_backend/internal/scraper"
	"corpintel_backend/internal/search/transport"
)

// DomainFinder resolves a company name to its official website domain.
type DomainFinder interface {
	FindDomain(ctx context.Context, companyName string) (string, error)
}

// SocialsFinder collects the company's social profile links.
type SocialsFinder interface {
	FindSocials(ctx context.Context, companyName string) (transport.SocialProfiles, error)
}

// EmployeeFinder lists people publicly associated with the company.
type EmployeeFinder interface {
	FindEmployees(ctx context.Context, companyName string) ([]transport.Employee, error)
}

// WebsiteScraper extracts contact details and tech signals from the site.
type WebsiteScraper interface {
	ScrapeDomain(ctx context.Context, domain string) (scraper.PageIntel, error)
}

// InfrastructureProber inspects a domain's mail and hosting setup.
type InfrastructureProber interface {
	Probe(ctx context.Context, domain string) infrastructure.Info
}

// CompanyAnalyzer produces the LLM company profile.
type CompanyAnalyzer interface {
	Analyze(ctx context.Context, in analysis.Input) (*analysis.Profile, error)
}

// EmailDiscovery finds a deliverable email for a person at a domain.
// A nil result means none was found.
type EmailDiscovery interface {
	DiscoverEmail(ctx context.Context, fullName, domain string) *DiscoveredEmail
}

// DiscoveredEmail is the discovery outcome surfaced to enrichment.
type DiscoveredEmail struct {
	Email  string
	Status string
	Score  int
}
