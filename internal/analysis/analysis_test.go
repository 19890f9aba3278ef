package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"corpintel_backend/platform/apperr"
	"corpintel_backend/platform/logger"
)

type fakeCompleter struct {
	response string
	err      error
	prompt   string
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

const validResponse = `{
	"industry": "Industrial tooling",
	"company_size": "51-200",
	"summary": "Acme builds tooling for factories.",
	"target_audience": "Plant managers",
	"key_offerings": ["CNC tooling", "Maintenance"],
	"key_people": [{"name": "Jane Smit", "role": "CEO"}, {"name": "Not Found", "role": ""}],
	"icebreaker": "Saw your new plant opening in Ohio."
}`

func TestAnalyzeParsesProfile(t *testing.T) {
	llm := &fakeCompleter{response: validResponse}
	svc := NewServiceWithCompleter(llm, logger.New("development"))

	profile, err := svc.Analyze(context.Background(), Input{
		CompanyName:  "Acme",
		Domain:       "acme.io",
		PageTitle:    "Acme Corp",
		Technologies: []string{"WordPress"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Industry != "Industrial tooling" {
		t.Fatalf("unexpected industry %q", profile.Industry)
	}
	if profile.CompanySize != "51-200" {
		t.Fatalf("unexpected size %q", profile.CompanySize)
	}
	if len(profile.KeyOfferings) != 2 {
		t.Fatalf("expected 2 offerings, got %v", profile.KeyOfferings)
	}
	if len(profile.KeyPeople) != 2 || profile.KeyPeople[0].Name != "Jane Smit" || profile.KeyPeople[0].Role != "CEO" {
		t.Fatalf("unexpected key people %v", profile.KeyPeople)
	}

	if !strings.Contains(llm.prompt, "Acme") || !strings.Contains(llm.prompt, "acme.io") {
		t.Fatalf("prompt missing company material")
	}
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	llm := &fakeCompleter{response: "```json\n" + validResponse + "\n```"}
	svc := NewServiceWithCompleter(llm, logger.New("development"))

	profile, err := svc.Analyze(context.Background(), Input{CompanyName: "Acme", Domain: "acme.io"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Summary == "" {
		t.Fatalf("expected parsed summary")
	}
}

func TestAnalyzeMalformedOutputIsUpstreamError(t *testing.T) {
	llm := &fakeCompleter{response: "I cannot answer that."}
	svc := NewServiceWithCompleter(llm, logger.New("development"))

	_, err := svc.Analyze(context.Background(), Input{CompanyName: "Acme", Domain: "acme.io"})
	if err == nil {
		t.Fatalf("expected error for malformed output")
	}
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream kind, got %v", err)
	}
}

func TestAnalyzeMissingSummaryRejected(t *testing.T) {
	llm := &fakeCompleter{response: `{"industry":"Tooling"}`}
	svc := NewServiceWithCompleter(llm, logger.New("development"))

	if _, err := svc.Analyze(context.Background(), Input{CompanyName: "Acme", Domain: "acme.io"}); err == nil {
		t.Fatalf("expected error for profile without summary")
	}
}

func TestAnalyzeLLMFailure(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("rate limited")}
	svc := NewServiceWithCompleter(llm, logger.New("development"))

	_, err := svc.Analyze(context.Background(), Input{CompanyName: "Acme", Domain: "acme.io"})
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream kind, got %v", err)
	}
}

func TestAnalyzeTruncatesPageText(t *testing.T) {
	llm := &fakeCompleter{response: validResponse}
	svc := NewServiceWithCompleter(llm, logger.New("development"))

	long := strings.Repeat("x", maxPageText*2)
	if _, err := svc.Analyze(context.Background(), Input{CompanyName: "Acme", Domain: "acme.io", PageText: long}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(llm.prompt) > maxPageText+2000 {
		t.Fatalf("prompt not truncated, len=%d", len(llm.prompt))
	}
}
