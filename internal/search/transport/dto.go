// Package transport defines DTOs for the web search collaborator.
package transport

// Result is one organic web search result.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Employee is a person found via public profile search.
type Employee struct {
	FullName string `json:"fullName"`
	Title    string `json:"title,omitempty"`
	Profile  string `json:"profile,omitempty"`
}

// SocialProfiles groups the company's discovered social links.
type SocialProfiles struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}
