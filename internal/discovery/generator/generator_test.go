package generator

import (
	"context"
	"errors"
	"testing"

	"corpintel_backend/internal/discovery/pattern"
	"corpintel_backend/platform/logger"
)

type fakeStore struct {
	patterns map[string]pattern.Template
	getErr   error
}

func (f *fakeStore) GetPattern(_ context.Context, domain string) (pattern.Template, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.patterns[domain], nil
}

func (f *fakeStore) SavePattern(_ context.Context, domain string, tmpl pattern.Template) error {
	if f.patterns == nil {
		f.patterns = make(map[string]pattern.Template)
	}
	f.patterns[domain] = tmpl
	return nil
}

func newTestGenerator(store *fakeStore) *Generator {
	return New(store, logger.New("development"))
}

func TestGenerateStandardOrder(t *testing.T) {
	gen := newTestGenerator(&fakeStore{})

	got := gen.Generate(context.Background(), "Sam Altman", "openai.com")
	if len(got) != 14 {
		t.Fatalf("expected 14 candidates, got %d", len(got))
	}
	if got[0] != "sam@openai.com" {
		t.Fatalf("expected sam@openai.com first, got %q", got[0])
	}
	if got[1] != "sam.altman@openai.com" {
		t.Fatalf("expected sam.altman@openai.com second, got %q", got[1])
	}
	if got[13] != "sam-a@openai.com" {
		t.Fatalf("expected sam-a@openai.com last, got %q", got[13])
	}
}

func TestGenerateLearnedPatternFirst(t *testing.T) {
	store := &fakeStore{patterns: map[string]pattern.Template{
		"openai.com": pattern.FirstDotLast,
	}}
	gen := newTestGenerator(store)

	got := gen.Generate(context.Background(), "Sam Altman", "openai.com")
	if got[0] != "sam.altman@openai.com" {
		t.Fatalf("expected learned candidate first, got %q", got[0])
	}

	// The learned candidate must not appear twice.
	count := 0
	for _, c := range got {
		if c == "sam.altman@openai.com" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one occurrence of learned candidate, got %d", count)
	}
	if len(got) != 14 {
		t.Fatalf("expected 14 unique candidates, got %d", len(got))
	}
}

func TestGenerateEmptyInputs(t *testing.T) {
	gen := newTestGenerator(&fakeStore{})

	if got := gen.Generate(context.Background(), "", "openai.com"); len(got) != 0 {
		t.Fatalf("expected no candidates for empty name, got %d", len(got))
	}
	if got := gen.Generate(context.Background(), "Sam Altman", ""); len(got) != 0 {
		t.Fatalf("expected no candidates for empty domain, got %d", len(got))
	}
}

func TestGenerateSingleTokenName(t *testing.T) {
	gen := newTestGenerator(&fakeStore{})

	got := gen.Generate(context.Background(), "Cher", "music.com")
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got %d", len(got))
	}
	if got[0] != "cher@music.com" {
		t.Fatalf("expected cher@music.com, got %q", got[0])
	}
}

func TestGenerateNormalizesDomain(t *testing.T) {
	gen := newTestGenerator(&fakeStore{})

	got := gen.Generate(context.Background(), "Sam Altman", "  OpenAI.COM ")
	if got[0] != "sam@openai.com" {
		t.Fatalf("expected lowercased domain, got %q", got[0])
	}
}

func TestGenerateStoreFailureDegradesToNoPattern(t *testing.T) {
	store := &fakeStore{getErr: errors.New("redis down")}
	gen := newTestGenerator(store)

	got := gen.Generate(context.Background(), "Sam Altman", "openai.com")
	if len(got) != 14 {
		t.Fatalf("expected standard candidate list despite store failure, got %d", len(got))
	}
	if got[0] != "sam@openai.com" {
		t.Fatalf("expected standard order despite store failure, got %q first", got[0])
	}
}
