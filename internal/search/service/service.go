// Package service turns raw web search results into company intelligence:
// the official domain, social profiles, and public employee listings.
package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"corpintel_backend/internal/search/transport"
	"corpintel_backend/platform/logger"
)

// Searcher is the raw query dependency (the Serper client in production).
type Searcher interface {
	Search(ctx context.Context, query string) ([]transport.Result, error)
}

// aggregatorHosts are result hosts that can never be a company's own website.
var aggregatorHosts = []string{
	"linkedin.com",
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"youtube.com",
	"wikipedia.org",
	"glassdoor.com",
	"indeed.com",
	"crunchbase.com",
	"bloomberg.com",
	"yelp.com",
}

// Service implements the search-driven hunters.
type Service struct {
	search Searcher
	log    *logger.Logger
}

// New creates a search service.
func New(search Searcher, log *logger.Logger) *Service {
	return &Service{search: search, log: log}
}

// FindDomain resolves a company name to its official website domain. The
// first organic result whose host is not a known aggregator wins. Empty
// string means no plausible domain was found.
func (s *Service) FindDomain(ctx context.Context, companyName string) (string, error) {
	results, err := s.search.Search(ctx, fmt.Sprintf("%s official website", companyName))
	if err != nil {
		return "", err
	}

	for _, r := range results {
		host := hostOf(r.Link)
		if host == "" || isAggregator(host) {
			continue
		}
		return host, nil
	}
	return "", nil
}

// FindSocials collects the company's social profile links from targeted
// queries. Missing profiles are simply left empty.
func (s *Service) FindSocials(ctx context.Context, companyName string) (transport.SocialProfiles, error) {
	var profiles transport.SocialProfiles

	lookups := []struct {
		site   string
		target *string
	}{
		{"linkedin.com/company", &profiles.LinkedIn},
		{"twitter.com", &profiles.Twitter},
		{"facebook.com", &profiles.Facebook},
		{"instagram.com", &profiles.Instagram},
	}

	for _, lookup := range lookups {
		results, err := s.search.Search(ctx, fmt.Sprintf("site:%s %q", lookup.site, companyName))
		if err != nil {
			s.log.Warn("social lookup failed", "site", lookup.site, "error", err)
			continue
		}
		for _, r := range results {
			if strings.Contains(r.Link, strings.SplitN(lookup.site, "/", 2)[0]) {
				*lookup.target = r.Link
				break
			}
		}
	}

	return profiles, nil
}

// FindEmployees searches public LinkedIn profiles for people at the company.
// Names and titles come from result headlines shaped like
// "Jane Doe - Head of Sales - Acme | LinkedIn".
func (s *Service) FindEmployees(ctx context.Context, companyName string) ([]transport.Employee, error) {
	results, err := s.search.Search(ctx, fmt.Sprintf(`site:linkedin.com/in %q`, companyName))
	if err != nil {
		return nil, err
	}

	employees := make([]transport.Employee, 0, len(results))
	seen := make(map[string]struct{})

	for _, r := range results {
		emp, ok := ParseProfileTitle(r.Title)
		if !ok {
			continue
		}
		key := strings.ToLower(emp.FullName)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		emp.Profile = r.Link
		employees = append(employees, emp)
	}

	return employees, nil
}

// ParseProfileTitle extracts a person's name and role from a LinkedIn result
// headline. Headlines without a recognizable "Name - Title" shape are
// rejected.
func ParseProfileTitle(title string) (transport.Employee, bool) {
	title = strings.TrimSuffix(title, "| LinkedIn")
	title = strings.TrimSpace(title)

	segments := strings.Split(title, " - ")
	if len(segments) == 0 {
		return transport.Employee{}, false
	}

	name := strings.TrimSpace(segments[0])
	if name == "" || len(strings.Fields(name)) < 2 {
		return transport.Employee{}, false
	}

	emp := transport.Employee{FullName: name}
	if len(segments) > 1 {
		emp.Title = strings.TrimSpace(segments[1])
	}
	return emp, true
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

func isAggregator(host string) bool {
	for _, agg := range aggregatorHosts {
		if host == agg || strings.HasSuffix(host, "."+agg) {
			return true
		}
	}
	return false
}
