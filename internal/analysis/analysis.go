// Package analysis turns raw scraped and searched material into a structured
// company profile using an LLM in strict JSON mode.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"corpintel_backend/platform/ai/mistral"
	"corpintel_backend/platform/apperr"
	"corpintel_backend/platform/config"
	"corpintel_backend/platform/logger"
)

// Completer is the LLM dependency (the Mistral client in production).
type Completer interface {
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// Input is the raw material fed to the analysis prompt.
type Input struct {
	CompanyName  string
	Domain       string
	PageTitle    string
	Description  string
	PageText     string
	Technologies []string
}

// KeyPerson is a leadership or staff member the model spotted in the page
// text. Models emit "Not Found" placeholder names; consumers filter those.
type KeyPerson struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Profile is the structured analysis output. Field names mirror the JSON
// keys the model is instructed to emit.
type Profile struct {
	Industry       string      `json:"industry"`
	CompanySize    string      `json:"company_size"`
	Summary        string      `json:"summary"`
	TargetAudience string      `json:"target_audience"`
	KeyOfferings   []string    `json:"key_offerings"`
	KeyPeople      []KeyPerson `json:"key_people"`
	Icebreaker     string      `json:"icebreaker"`
}

// Service runs LLM analysis over scraped company material.
type Service struct {
	llm Completer
	log *logger.Logger
}

// NewService creates an analysis service.
func NewService(cfg config.MistralConfig, log *logger.Logger) *Service {
	client := mistral.New(mistral.Config{
		APIKey:  cfg.GetMistralAPIKey(),
		BaseURL: cfg.GetMistralBaseURL(),
		Model:   cfg.GetMistralModel(),
	})
	return &Service{llm: client, log: log}
}

// NewServiceWithCompleter creates an analysis service with an explicit LLM
// dependency, used in tests.
func NewServiceWithCompleter(llm Completer, log *logger.Logger) *Service {
	return &Service{llm: llm, log: log}
}

const promptTemplate = `You are a B2B sales intelligence analyst. Analyze the company below and respond with a single JSON object containing exactly these keys: "industry" (string), "company_size" (one of "1-10", "11-50", "51-200", "201-1000", "1000+"), "summary" (2-3 sentences), "target_audience" (string), "key_offerings" (array of strings, max 5), "key_people" (array of objects with "name" and "role", people explicitly named in the text; if none are found write a single entry with name "Not Found"), "icebreaker" (one personalized opening line for a cold email).

Company: %s
Website: %s
Page title: %s
Meta description: %s
Detected technologies: %s

Website text (truncated):
%s`

// maxPageText caps how much scraped text goes into the prompt.
const maxPageText = 4000

// Analyze produces a structured profile for the company. Responses that are
// not valid JSON objects with the expected shape are an Upstream error.
func (s *Service) Analyze(ctx context.Context, in Input) (*Profile, error) {
	pageText := in.PageText
	if len(pageText) > maxPageText {
		pageText = pageText[:maxPageText]
	}

	prompt := fmt.Sprintf(promptTemplate,
		in.CompanyName,
		in.Domain,
		in.PageTitle,
		in.Description,
		strings.Join(in.Technologies, ", "),
		pageText,
	)

	raw, err := s.llm.CompleteJSON(ctx, prompt)
	if err != nil {
		s.log.UpstreamError("mistral", "analyze", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "analysis service unavailable", err).WithOp("analysis.Analyze")
	}

	profile, err := parseProfile(raw)
	if err != nil {
		s.log.Warn("analysis returned malformed profile", "error", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "analysis returned malformed output", err).WithOp("analysis.Analyze")
	}
	return profile, nil
}

// parseProfile decodes the model output strictly. Models occasionally wrap
// JSON in markdown fences despite json_object mode; those are stripped.
func parseProfile(raw string) (*Profile, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if profile.Summary == "" {
		return nil, fmt.Errorf("profile missing summary")
	}
	return &profile, nil
}
