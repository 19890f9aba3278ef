package scraper

import (
	"context"
	"net/url"
	"strings"

	"corpintel_backend/platform/config"
	"corpintel_backend/platform/logger"
)

// contactPaths are the well-known pages scanned after the homepage. The
// first one that resolves is used; most sites only have one.
var contactPaths = []string{"/contact", "/contact-us", "/about", "/about-us"}

// Service scrapes a company website for contact details and tech signals.
type Service struct {
	fetcher       *fetcher
	defaultRegion string
	log           *logger.Logger
}

// NewService creates a scraper service.
func NewService(cfg config.ScraperConfig, log *logger.Logger) *Service {
	return &Service{
		fetcher:       newFetcher(cfg.GetScraperUserAgent()),
		defaultRegion: "US",
		log:           log,
	}
}

// ScrapeDomain fetches the homepage and the first reachable contact page and
// merges what both reveal. A completely unreachable site returns an empty
// PageIntel and the fetch error.
func (s *Service) ScrapeDomain(ctx context.Context, domain string) (PageIntel, error) {
	base := "https://" + strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "https://")
	if _, err := url.Parse(base); err != nil {
		return PageIntel{}, err
	}

	body, err := s.fetcher.fetch(ctx, base)
	if err != nil {
		s.log.Warn("homepage fetch failed", "domain", domain, "error", err)
		return PageIntel{}, err
	}
	intel := extract(body, s.defaultRegion)

	for _, path := range contactPaths {
		contactBody, err := s.fetcher.fetch(ctx, base+path)
		if err != nil {
			continue
		}
		merge(&intel, extract(contactBody, s.defaultRegion))
		break
	}

	return intel, nil
}

// merge folds a secondary page's findings into the primary result. Title and
// description always come from the primary page.
func merge(primary *PageIntel, secondary PageIntel) {
	primary.Emails = mergeUnique(primary.Emails, secondary.Emails)
	primary.Phones = mergeUnique(primary.Phones, secondary.Phones)
	primary.Links = mergeUnique(primary.Links, secondary.Links)
	primary.Technologies = mergeUnique(primary.Technologies, secondary.Technologies)
}

func mergeUnique(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range a {
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
