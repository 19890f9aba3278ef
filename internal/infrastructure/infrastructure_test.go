package infrastructure

import (
	"context"
	"net"
	"net/http"
	"testing"

	"corpintel_backend/platform/logger"
)

func TestClassifyMX(t *testing.T) {
	cases := []struct {
		hosts []string
		want  string
	}{
		{[]string{"aspmx.l.google.com"}, "Google Workspace"},
		{[]string{"acme-io.mail.protection.outlook.com"}, "Microsoft 365"},
		{[]string{"mx.zoho.com"}, "Zoho Mail"},
		{[]string{"us-smtp-inbound-1.mimecast.com"}, "Mimecast"},
		{[]string{"mail.acme.io"}, "Self-hosted / Other"},
		{nil, ""},
	}

	for _, tc := range cases {
		if got := ClassifyMX(tc.hosts); got != tc.want {
			t.Fatalf("hosts %v: expected %q, got %q", tc.hosts, tc.want, got)
		}
	}
}

func TestClassifyMXFirstMatchWins(t *testing.T) {
	hosts := []string{"aspmx.l.google.com", "mx.zoho.com"}
	if got := ClassifyMX(hosts); got != "Google Workspace" {
		t.Fatalf("expected first provider match, got %q", got)
	}
}

func TestClassifyHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Server", "cloudflare")
	if got := ClassifyHeaders(h); got != "Cloudflare" {
		t.Fatalf("expected Cloudflare, got %q", got)
	}

	h = http.Header{}
	h.Set("X-Vercel-Id", "iad1::abc123")
	if got := ClassifyHeaders(h); got != "Vercel" {
		t.Fatalf("expected Vercel, got %q", got)
	}

	h = http.Header{}
	h.Set("Server", "nginx/1.25")
	if got := ClassifyHeaders(h); got != "" {
		t.Fatalf("expected no CDN for plain nginx, got %q", got)
	}
}

type fakeResolver struct {
	records []*net.MX
	err     error
}

func (f *fakeResolver) LookupMX(_ context.Context, _ string) ([]*net.MX, error) {
	return f.records, f.err
}

func TestProbeMailSortsAndClassifies(t *testing.T) {
	svc := NewService(logger.New("development"))
	svc.resolver = &fakeResolver{records: []*net.MX{
		{Host: "ALT1.aspmx.l.google.com.", Pref: 5},
		{Host: "aspmx.l.google.com.", Pref: 1},
	}}

	var info Info
	info.MXRecords = []string{}
	svc.probeMail(context.Background(), "acme.io", &info)

	if len(info.MXRecords) != 2 {
		t.Fatalf("expected 2 records, got %d", len(info.MXRecords))
	}
	if info.MXRecords[0] != "alt1.aspmx.l.google.com" {
		t.Fatalf("expected lowercased host without trailing dot, got %q", info.MXRecords[0])
	}
	if info.EmailProvider != "Google Workspace" {
		t.Fatalf("expected Google Workspace, got %q", info.EmailProvider)
	}
}

func TestProbeMailLookupFailureLeavesInfoEmpty(t *testing.T) {
	svc := NewService(logger.New("development"))
	svc.resolver = &fakeResolver{err: &net.DNSError{Err: "no such host", Name: "acme.io"}}

	info := Info{MXRecords: []string{}}
	svc.probeMail(context.Background(), "acme.io", &info)

	if len(info.MXRecords) != 0 || info.EmailProvider != "" {
		t.Fatalf("expected empty info on lookup failure, got %+v", info)
	}
}
