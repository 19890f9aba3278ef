// Package transport defines the request and response DTOs for the email
// discovery endpoints.
package transport

// DiscoverEmailRequest asks for a single best email for a person at a domain.
type DiscoverEmailRequest struct {
	FullName string `json:"fullName" validate:"required,min=1,max=200"`
	Domain   string `json:"domain" validate:"required,fqdn"`
}

// DiscoverEmailResponse carries the discovery outcome. Found is false when no
// deliverable or risky address could be established.
type DiscoverEmailResponse struct {
	Found      bool   `json:"found"`
	Email      string `json:"email,omitempty"`
	Status     string `json:"status,omitempty"`
	Score      int    `json:"score,omitempty"`
	Candidates int    `json:"candidatesTried"`
}

// CandidatesRequest asks for the raw ordered candidate list without
// validation.
type CandidatesRequest struct {
	FullName string `json:"fullName" validate:"required,min=1,max=200"`
	Domain   string `json:"domain" validate:"required,fqdn"`
}

// CandidatesResponse is the ordered candidate list.
type CandidatesResponse struct {
	Candidates []string `json:"candidates"`
}

// PatternResponse reports the learned template for a domain.
type PatternResponse struct {
	Domain  string `json:"domain"`
	Pattern string `json:"pattern,omitempty"`
	Known   bool   `json:"known"`
}
