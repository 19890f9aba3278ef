// Package infrastructure probes a domain's mail and hosting setup using DNS
// and response headers.
package infrastructure

import (
	"context"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"corpintel_backend/platform/logger"
)

// Info is the probe result for one domain.
type Info struct {
	EmailProvider string   `json:"emailProvider,omitempty"`
	MXRecords     []string `json:"mxRecords"`
	WebServer     string   `json:"webServer,omitempty"`
	CDN           string   `json:"cdn,omitempty"`
	PoweredBy     string   `json:"poweredBy,omitempty"`
}

// mxProviders maps an MX host substring to the mail provider behind it.
var mxProviders = []struct {
	marker   string
	provider string
}{
	{"google.com", "Google Workspace"},
	{"googlemail.com", "Google Workspace"},
	{"outlook.com", "Microsoft 365"},
	{"protection.outlook", "Microsoft 365"},
	{"zoho.com", "Zoho Mail"},
	{"zoho.eu", "Zoho Mail"},
	{"protonmail", "Proton Mail"},
	{"mimecast", "Mimecast"},
	{"pphosted.com", "Proofpoint"},
	{"barracuda", "Barracuda"},
	{"mailgun", "Mailgun"},
	{"amazonaws.com", "Amazon WorkMail"},
	{"ovh.net", "OVH"},
	{"yandex", "Yandex Mail"},
	{"secureserver.net", "GoDaddy"},
	{"emailsrvr.com", "Rackspace"},
}

// cdnMarkers maps response header evidence to a CDN or edge provider.
var cdnMarkers = []struct {
	header   string
	contains string
	name     string
}{
	{"Server", "cloudflare", "Cloudflare"},
	{"Server", "awselb", "AWS ELB"},
	{"Server", "awsalb", "AWS ALB"},
	{"X-Served-By", "cache", "Fastly"},
	{"X-Vercel-Id", "", "Vercel"},
	{"X-Amz-Cf-Id", "", "Amazon CloudFront"},
	{"X-Akamai-Transformed", "", "Akamai"},
	{"X-Cache", "hit", "CDN cache"},
}

// Resolver is the DNS dependency, satisfied by *net.Resolver.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// Service probes domains. Probes are best-effort: DNS or HTTP failures yield
// partial Info, never an error to the caller.
type Service struct {
	resolver   Resolver
	httpClient *http.Client
	log        *logger.Logger
}

// NewService creates an infrastructure probe service.
func NewService(log *logger.Logger) *Service {
	return &Service{
		resolver:   net.DefaultResolver,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Probe inspects the domain's MX records and response headers.
func (s *Service) Probe(ctx context.Context, domain string) Info {
	info := Info{MXRecords: []string{}}
	domain = strings.ToLower(strings.TrimSpace(domain))

	s.probeMail(ctx, domain, &info)
	s.probeWeb(ctx, domain, &info)
	return info
}

func (s *Service) probeMail(ctx context.Context, domain string, info *Info) {
	records, err := s.resolver.LookupMX(ctx, domain)
	if err != nil {
		s.log.Debug("mx lookup failed", "domain", domain, "error", err)
		return
	}

	hosts := make([]string, 0, len(records))
	for _, mx := range records {
		hosts = append(hosts, strings.TrimSuffix(strings.ToLower(mx.Host), "."))
	}
	sort.Strings(hosts)
	info.MXRecords = hosts
	info.EmailProvider = ClassifyMX(hosts)
}

// ClassifyMX names the mail provider behind a set of MX hosts. Unknown
// setups report as self-hosted when any MX exists at all.
func ClassifyMX(hosts []string) string {
	for _, host := range hosts {
		for _, p := range mxProviders {
			if strings.Contains(host, p.marker) {
				return p.provider
			}
		}
	}
	if len(hosts) > 0 {
		return "Self-hosted / Other"
	}
	return ""
}

func (s *Service) probeWeb(ctx context.Context, domain string, info *Info) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "https://"+domain, nil)
	if err != nil {
		return
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Debug("header probe failed", "domain", domain, "error", err)
		return
	}
	defer resp.Body.Close()

	info.WebServer = resp.Header.Get("Server")
	info.PoweredBy = resp.Header.Get("X-Powered-By")
	info.CDN = ClassifyHeaders(resp.Header)
}

// ClassifyHeaders names the CDN or edge provider evidenced by response
// headers, empty when none is recognizable.
func ClassifyHeaders(h http.Header) string {
	for _, m := range cdnMarkers {
		value := h.Get(m.header)
		if value == "" {
			continue
		}
		if m.contains == "" || strings.Contains(strings.ToLower(value), m.contains) {
			return m.name
		}
	}
	return ""
}
