package service

import (
	"context"
	"errors"
	"testing"

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
)

type fakeDomains struct {
	domain string
	err    error
}

func (f *fakeDomains) FindDomain(context.Context, string) (string, error) {
	return f.domain, f.err
}

type fakeSocials struct{ profiles searchtransport.SocialProfiles }

func (f *fakeSocials) FindSocials(context.Context, string) (searchtransport.SocialProfiles, error) {
	return f.profiles, nil
}

type fakeEmployees struct {
	people []searchtransport.Employee
	err    error
}

func (f *fakeEmployees) FindEmployees(context.Context, string) ([]searchtransport.Employee, error) {
	return f.people, f.err
}

type fakeScraper struct {
	intel scraper.PageIntel
	err   error
}

func (f *fakeScraper) ScrapeDomain(context.Context, string) (scraper.PageIntel, error) {
	return f.intel, f.err
}

type fakeProber struct{ info infrastructure.Info }

func (f *fakeProber) Probe(context.Context, string) infrastructure.Info {
	return f.info
}

type fakeAnalyzer struct {
	profile *analysis.Profile
	err     error
}

func (f *fakeAnalyzer) Analyze(context.Context, analysis.Input) (*analysis.Profile, error) {
	return f.profile, f.err
}

type fakeDiscovery struct {
	results map[string]*ports.DiscoveredEmail
	calls   []string
}

func (f *fakeDiscovery) DiscoverEmail(_ context.Context, fullName, _ string) *ports.DiscoveredEmail {
	f.calls = append(f.calls, fullName)
	return f.results[fullName]
}

type deps struct {
	domains   *fakeDomains
	socials   *fakeSocials
	employees *fakeEmployees
	scraper   *fakeScraper
	prober    *fakeProber
	analyzer  *fakeAnalyzer
	discovery *fakeDiscovery
	bus       *events.InMemoryBus
}

func defaultDeps() deps {
	return deps{
		domains:   &fakeDomains{domain: "acme.io"},
		socials:   &fakeSocials{profiles: searchtransport.SocialProfiles{LinkedIn: "https://linkedin.com/company/acme"}},
		employees: &fakeEmployees{},
		scraper: &fakeScraper{intel: scraper.PageIntel{
			Title:        "Acme Corp",
			Emails:       []string{"info@acme.io"},
			Phones:       []string{"+14155552671"},
			Technologies: []string{"WordPress"},
		}},
		prober: &fakeProber{info: infrastructure.Info{
			EmailProvider: "Google Workspace",
			MXRecords:     []string{"aspmx.l.google.com"},
		}},
		analyzer: &fakeAnalyzer{profile: &analysis.Profile{
			Industry: "Tooling",
			Summary:  "Acme builds tooling.",
		}},
		discovery: &fakeDiscovery{},
		bus:       events.NewInMemoryBus(logger.New("development")),
	}
}

func newTestService(d deps) *Service {
	return New(d.domains, d.socials, d.employees, d.scraper, d.prober, d.analyzer, d.discovery, d.bus, logger.New("development"))
}

func TestScanFullReport(t *testing.T) {
	d := defaultDeps()
	d.employees.people = []searchtransport.Employee{
		{FullName: "Jane Doe", Title: "CEO"},
	}
	d.discovery.results = map[string]*ports.DiscoveredEmail{
		"Jane Doe": {Email: "jane.doe@acme.io", Status: "safe", Score: 100},
	}

	completed := make(chan domainevents.EnrichmentCompleted, 1)
	d.bus.Subscribe(domainevents.EnrichmentCompletedName, events.HandlerFunc(func(_ context.Context, e events.Event) error {
		if evt, ok := e.(domainevents.EnrichmentCompleted); ok {
			completed <- evt
		}
		return nil
	}))

	report, err := newTestService(d).Scan(context.Background(), transport.ScanRequest{Domain: "acme.io"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Domain != "acme.io" {
		t.Fatalf("unexpected domain %q", report.Domain)
	}
	if report.CompanyName != "Acme" {
		t.Fatalf("expected name derived from domain, got %q", report.CompanyName)
	}
	if report.ScanID == "" {
		t.Fatalf("expected scan id assigned")
	}
	if report.Profile == nil || report.Profile.Industry != "Tooling" {
		t.Fatalf("expected analysis profile, got %+v", report.Profile)
	}
	if report.Infrastructure.EmailProvider != "Google Workspace" {
		t.Fatalf("unexpected infrastructure %+v", report.Infrastructure)
	}
	if len(report.Employees) != 1 || report.Employees[0].Email != "jane.doe@acme.io" {
		t.Fatalf("unexpected employees %+v", report.Employees)
	}
	if report.Socials.LinkedIn == "" {
		t.Fatalf("expected socials carried into report")
	}

	evt := <-completed
	if evt.Domain != "acme.io" || evt.ScanID != report.ScanID {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestScanResolvesDomainFromName(t *testing.T) {
	d := defaultDeps()
	d.domains.domain = "acme.io"

	report, err := newTestService(d).Scan(context.Background(), transport.ScanRequest{CompanyName: "Acme Corp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Domain != "acme.io" {
		t.Fatalf("expected hunted domain, got %q", report.Domain)
	}
	if report.CompanyName != "Acme Corp" {
		t.Fatalf("expected given name kept, got %q", report.CompanyName)
	}
}

func TestScanUnresolvableDomain(t *testing.T) {
	d := defaultDeps()
	d.domains.domain = ""

	_, err := newTestService(d).Scan(context.Background(), transport.ScanRequest{CompanyName: "Ghost Co"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestScanDomainLookupFailure(t *testing.T) {
	d := defaultDeps()
	d.domains.err = errors.New("quota exceeded")

	_, err := newTestService(d).Scan(context.Background(), transport.ScanRequest{CompanyName: "Acme"})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestScanCollaboratorFailuresDegrade(t *testing.T) {
	d := defaultDeps()
	d.scraper.err = errors.New("site down")
	d.employees.err = errors.New("search down")
	d.analyzer.err = errors.New("llm down")

	report, err := newTestService(d).Scan(context.Background(), transport.ScanRequest{Domain: "acme.io"})
	if err != nil {
		t.Fatalf("scan must survive collaborator failures, got %v", err)
	}
	if report.Profile != nil {
		t.Fatalf("expected no profile when analysis fails")
	}
	if len(report.Contact.Emails) != 0 {
		t.Fatalf("expected empty contact info when scrape fails")
	}
	if report.Infrastructure.EmailProvider != "Google Workspace" {
		t.Fatalf("infrastructure probe should still contribute")
	}
}

func TestScanMergesAnalysisKeyPeople(t *testing.T) {
	d := defaultDeps()
	d.employees.people = []searchtransport.Employee{
		{FullName: "Jane Doe", Title: "CEO", Profile: "https://linkedin.com/in/janedoe"},
	}
	d.analyzer.profile = &analysis.Profile{
		Summary: "Acme builds tooling.",
		KeyPeople: []analysis.KeyPerson{
			{Name: "jane doe", Role: "Chief Executive"},
			{Name: "Piet Visser", Role: "CTO"},
			{Name: "Not Found", Role: ""},
			{Name: "  ", Role: "Ghost"},
		},
	}
	d.discovery.results = map[string]*ports.DiscoveredEmail{
		"Piet Visser": {Email: "piet.visser@acme.io", Status: "safe", Score: 100},
	}

	report, err := newTestService(d).Scan(context.Background(), transport.ScanRequest{Domain: "acme.io"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Employees) != 2 {
		t.Fatalf("expected search person plus one analysis person, got %+v", report.Employees)
	}
	if report.Employees[0].FullName != "Jane Doe" {
		t.Fatalf("search results must keep priority, got %q first", report.Employees[0].FullName)
	}
	if report.Employees[1].FullName != "Piet Visser" || report.Employees[1].Title != "CTO" {
		t.Fatalf("unexpected merged person %+v", report.Employees[1])
	}
	if report.Employees[1].Email != "piet.visser@acme.io" {
		t.Fatalf("merged person must get email discovery, got %+v", report.Employees[1])
	}
}

func TestScanCapsEmployeeDiscoveries(t *testing.T) {
	d := defaultDeps()
	people := make([]searchtransport.Employee, 0, maxEmployeeDiscoveries+3)
	for _, name := range []string{"A One", "B Two", "C Three", "D Four", "E Five", "F Six", "G Seven", "H Eight"} {
		people = append(people, searchtransport.Employee{FullName: name})
	}
	d.employees.people = people

	report, err := newTestService(d).Scan(context.Background(), transport.ScanRequest{Domain: "acme.io"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Employees) != len(people) {
		t.Fatalf("all people must appear in the report, got %d", len(report.Employees))
	}
	if len(d.discovery.calls) != maxEmployeeDiscoveries {
		t.Fatalf("expected %d discovery runs, got %d", maxEmployeeDiscoveries, len(d.discovery.calls))
	}
}
