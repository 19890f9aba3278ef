// Package transport defines the request and response DTOs for enrichment.
package transport

import "time"

// ScanRequest starts a company enrichment scan. Either a company name or a
// domain must be present; with only a name the domain is hunted first.
type ScanRequest struct {
	CompanyName string `json:"companyName" validate:"required_without=Domain,omitempty,min=2,max=200"`
	Domain      string `json:"domain" validate:"required_without=CompanyName,omitempty,fqdn"`
}

// IntelligenceReport is the full enrichment result for one company.
type IntelligenceReport struct {
	ScanID         string             `json:"scanId"`
	CompanyName    string             `json:"companyName"`
	Domain         string             `json:"domain"`
	Profile        *CompanyProfile    `json:"profile,omitempty"`
	Contact        ContactInfo        `json:"contact"`
	Infrastructure InfrastructureInfo `json:"infrastructure"`
	Employees      []EmployeeContact  `json:"employees"`
	Technologies   []string           `json:"technologies"`
	Socials        SocialLinks        `json:"socials"`
	GeneratedAt    time.Time          `json:"generatedAt"`
}

// CompanyProfile is the LLM-derived qualitative profile.
type CompanyProfile struct {
	Industry       string   `json:"industry,omitempty"`
	CompanySize    string   `json:"companySize,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	KeyOfferings   []string `json:"keyOfferings,omitempty"`
	Icebreaker     string   `json:"icebreaker,omitempty"`
}

// ContactInfo groups the generic contact details scraped from the site.
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// InfrastructureInfo describes the company's mail and hosting setup.
type InfrastructureInfo struct {
	EmailProvider string   `json:"emailProvider,omitempty"`
	MXRecords     []string `json:"mxRecords"`
	WebServer     string   `json:"webServer,omitempty"`
	CDN           string   `json:"cdn,omitempty"`
	PoweredBy     string   `json:"poweredBy,omitempty"`
}

// EmployeeContact is one person found for the company, with their discovered
// email when the validator confirmed one.
type EmployeeContact struct {
	FullName    string `json:"fullName"`
	Title       string `json:"title,omitempty"`
	Profile     string `json:"profile,omitempty"`
	Email       string `json:"email,omitempty"`
	EmailStatus string `json:"emailStatus,omitempty"`
	EmailScore  int    `json:"emailScore,omitempty"`
}

// SocialLinks groups the company's social profiles.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}
