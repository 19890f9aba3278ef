// Package service orchestrates a full company enrichment scan across the
// search, scraper, infrastructure, analysis and discovery collaborators.
package service

import (
	"context"
	"strings"
	"time"

	"corpintel_backend/internal/analysis"
	"corpintel_backend/internal/enrichment/ports"
	"corpintel_backend/internal/enrichment/transport"
	domainevents "corpintel_backend/internal/events"
	"corpintel_backend/internal/infrastructure"
	"corpintel_backend/internal/scraper"
	searchtransport "corpintel_backend/internal/search/transport"
	"corpintel_backend/platform/apperr"
	"corpintel_backend/platform/events"
	"corpintel_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxEmployeeDiscoveries caps how many people get a full email discovery run
// per scan. Each run can burn a whole validator call chain.
const maxEmployeeDiscoveries = 5

// Service runs enrichment scans.
type Service struct {
	domains   ports.DomainFinder
	socials   ports.SocialsFinder
	employees ports.EmployeeFinder
	scraper   ports.WebsiteScraper
	infra     ports.InfrastructureProber
	analyzer  ports.CompanyAnalyzer
	discovery ports.EmailDiscovery
	bus       events.Bus
	log       *logger.Logger
}

// New creates the enrichment orchestrator.
func New(
	domains ports.DomainFinder,
	socials ports.SocialsFinder,
	employees ports.EmployeeFinder,
	webScraper ports.WebsiteScraper,
	infra ports.InfrastructureProber,
	analyzer ports.CompanyAnalyzer,
	discovery ports.EmailDiscovery,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		domains:   domains,
		socials:   socials,
		employees: employees,
		scraper:   webScraper,
		infra:     infra,
		analyzer:  analyzer,
		discovery: discovery,
		bus:       bus,
		log:       log,
	}
}

// Scan runs a full enrichment for one company. Collaborator failures degrade
// to empty report sections; only an unresolvable domain fails the scan.
func (s *Service) Scan(ctx context.Context, req transport.ScanRequest) (*transport.IntelligenceReport, error) {
	scanID := uuid.NewString()
	ctx = context.WithValue(ctx, logger.ScanIDKey, scanID)
	log := s.log.WithContext(ctx)

	companyName := strings.TrimSpace(req.CompanyName)
	domain := strings.ToLower(strings.TrimSpace(req.Domain))

	if domain == "" {
		found, err := s.domains.FindDomain(ctx, companyName)
		if err != nil {
			log.UpstreamError("search", "find_domain", err)
			return nil, apperr.Wrap(apperr.KindUpstream, "domain lookup failed", err)
		}
		if found == "" {
			return nil, apperr.NotFound("could not resolve a website for this company")
		}
		domain = found
	}
	if companyName == "" {
		companyName = nameFromDomain(domain)
	}

	log.Info("enrichment scan started", "company", companyName, "domain", domain)

	var (
		page      scraper.PageIntel
		infraInfo infrastructure.Info
		socials   searchtransport.SocialProfiles
		people    []searchtransport.Employee
	)

	// Independent collaborators fan out together. Each goroutine owns its
	// result variable and swallows its own failure.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		intel, err := s.scraper.ScrapeDomain(gctx, domain)
		if err != nil {
			log.Warn("scrape failed", "domain", domain, "error", err)
			return nil
		}
		page = intel
		return nil
	})
	g.Go(func() error {
		infraInfo = s.infra.Probe(gctx, domain)
		return nil
	})
	g.Go(func() error {
		profiles, err := s.socials.FindSocials(gctx, companyName)
		if err != nil {
			log.Warn("socials lookup failed", "company", companyName, "error", err)
			return nil
		}
		socials = profiles
		return nil
	})
	g.Go(func() error {
		found, err := s.employees.FindEmployees(gctx, companyName)
		if err != nil {
			log.Warn("employee lookup failed", "company", companyName, "error", err)
			return nil
		}
		people = found
		return nil
	})
	_ = g.Wait()

	profile, keyPeople := s.analyzeProfile(ctx, log, companyName, domain, page)
	people = mergeKeyPeople(people, keyPeople)

	report := &transport.IntelligenceReport{
		ScanID:      scanID,
		CompanyName: companyName,
		Domain:      domain,
		Contact: transport.ContactInfo{
			Emails: orEmpty(page.Emails),
			Phones: orEmpty(page.Phones),
		},
		Infrastructure: transport.InfrastructureInfo{
			EmailProvider: infraInfo.EmailProvider,
			MXRecords:     orEmpty(infraInfo.MXRecords),
			WebServer:     infraInfo.WebServer,
			CDN:           infraInfo.CDN,
			PoweredBy:     infraInfo.PoweredBy,
		},
		Technologies: orEmpty(page.Technologies),
		Socials: transport.SocialLinks{
			LinkedIn:  socials.LinkedIn,
			Twitter:   socials.Twitter,
			Facebook:  socials.Facebook,
			Instagram: socials.Instagram,
		},
		Profile:     profile,
		Employees:   s.enrichEmployees(ctx, log, people, domain),
		GeneratedAt: time.Now().UTC(),
	}

	s.bus.Publish(ctx, domainevents.NewEnrichmentCompleted(scanID, domain, report))
	log.Info("enrichment scan complete", "domain", domain, "employees", len(report.Employees))

	return report, nil
}

// enrichEmployees runs email discovery for the first few people found.
// Remaining people are included without an email.
func (s *Service) enrichEmployees(ctx context.Context, log *logger.Logger, people []searchtransport.Employee, domain string) []transport.EmployeeContact {
	contacts := make([]transport.EmployeeContact, 0, len(people))

	for i, person := range people {
		contact := transport.EmployeeContact{
			FullName: person.FullName,
			Title:    person.Title,
			Profile:  person.Profile,
		}

		if i < maxEmployeeDiscoveries {
			if found := s.discovery.DiscoverEmail(ctx, person.FullName, domain); found != nil {
				contact.Email = found.Email
				contact.EmailStatus = found.Status
				contact.EmailScore = found.Score
			}
		}

		contacts = append(contacts, contact)
	}

	if len(contacts) > 0 {
		log.Info("employee discovery finished", "domain", domain, "people", len(contacts))
	}
	return contacts
}

func (s *Service) analyzeProfile(ctx context.Context, log *logger.Logger, companyName, domain string, page scraper.PageIntel) (*transport.CompanyProfile, []analysis.KeyPerson) {
	profile, err := s.analyzer.Analyze(ctx, analysis.Input{
		CompanyName:  companyName,
		Domain:       domain,
		PageTitle:    page.Title,
		Description:  page.Description,
		PageText:     page.Text,
		Technologies: page.Technologies,
	})
	if err != nil {
		log.Warn("company analysis failed", "domain", domain, "error", err)
		return nil, nil
	}

	return &transport.CompanyProfile{
		Industry:       profile.Industry,
		CompanySize:    profile.CompanySize,
		Summary:        profile.Summary,
		TargetAudience: profile.TargetAudience,
		KeyOfferings:   profile.KeyOfferings,
		Icebreaker:     profile.Icebreaker,
	}, profile.KeyPeople
}

// mergeKeyPeople appends people the analysis named that the employee search
// did not already find. Placeholder "Not Found" entries are dropped and
// search results keep their position, so they stay ahead for the discovery
// cap.
func mergeKeyPeople(people []searchtransport.Employee, extra []analysis.KeyPerson) []searchtransport.Employee {
	seen := make(map[string]struct{}, len(people))
	for _, p := range people {
		seen[strings.ToLower(p.FullName)] = struct{}{}
	}

	for _, kp := range extra {
		name := strings.TrimSpace(kp.Name)
		key := strings.ToLower(name)
		if name == "" || strings.Contains(key, "not found") {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		people = append(people, searchtransport.Employee{FullName: name, Title: kp.Role})
	}
	return people
}

// nameFromDomain derives a displayable company name from a bare domain.
func nameFromDomain(domain string) string {
	base := domain
	if dot := strings.IndexByte(base, '.'); dot > 0 {
		base = base[:dot]
	}
	if base == "" {
		return domain
	}
	return strings.ToUpper(base[:1]) + base[1:]
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
