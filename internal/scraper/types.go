// Package scraper fetches a company website and extracts contact details and
// technology signals from its markup.
package scraper

// PageIntel is everything extracted from one fetched page.
type PageIntel struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Text         string   `json:"-"`
	Emails       []string `json:"emails"`
	Phones       []string `json:"phones"`
	Links        []string `json:"links"`
	Technologies []string `json:"technologies"`
}
