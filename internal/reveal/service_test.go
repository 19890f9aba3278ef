package reveal

import (
	"strings"
	"testing"
	"time"
)

type testConfig struct {
	secret  string
	ttl     time.Duration
	landing string
}

func (c testConfig) GetRevealSecretKey() string       { return c.secret }
func (c testConfig) GetRevealTokenTTL() time.Duration { return c.ttl }
func (c testConfig) GetCRMLandingPageURL() string     { return c.landing }

func newTestService() *Service {
	return NewService(testConfig{
		secret:  "test-secret",
		ttl:     5 * time.Minute,
		landing: "https://crm.example.com/landing",
	})
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.IssueToken("contact-42", "Jane Smit", "Acme BV", "company-7")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if time.Until(expiresAt) > 5*time.Minute || time.Until(expiresAt) < 4*time.Minute {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.ContactID != "contact-42" || claims.ContactName != "Jane Smit" {
		t.Fatalf("unexpected contact claims %+v", claims)
	}
	if claims.CompanyName != "Acme BV" || claims.CompanyID != "company-7" {
		t.Fatalf("unexpected company claims %+v", claims)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewService(testConfig{secret: "secret-a", ttl: time.Minute})
	verifier := NewService(testConfig{secret: "secret-b", ttl: time.Minute})

	token, _, err := issuer.IssueToken("contact-1", "Jane Smit", "Acme BV", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatalf("expected validation to fail across secrets")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService()

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Fatalf("expected validation to fail for garbage input")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := &Service{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := svc.IssueToken("contact-1", "Jane Smit", "Acme BV", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestLandingURLCarriesClaims(t *testing.T) {
	svc := newTestService()

	url := svc.LandingURL(&Claims{ContactID: "contact-1", ContactName: "Jane Smit", CompanyName: "Acme BV"})
	if !strings.HasPrefix(url, "https://crm.example.com/landing?") {
		t.Fatalf("unexpected base %q", url)
	}
	if !strings.Contains(url, "contact_id=contact-1") || !strings.Contains(url, "company_name=Acme+BV") {
		t.Fatalf("expected claims in query, got %q", url)
	}
	if strings.Contains(url, "company_id=") {
		t.Fatalf("empty company id should be omitted, got %q", url)
	}
}

func TestLandingURLUnconfigured(t *testing.T) {
	svc := NewService(testConfig{secret: "s", ttl: time.Minute})

	if url := svc.LandingURL(&Claims{ContactID: "contact-1"}); url != "" {
		t.Fatalf("expected empty URL when landing page unset, got %q", url)
	}
}
