package scraper

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/html"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[0-9][0-9 ()\-.]{7,18}[0-9]`)
)

// ignoredEmailSuffixes filters asset filenames that match the email regex
// (image@2x.png and friends) and anonymized placeholders.
var ignoredEmailSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", "example.com", "sentry.io"}

// maxTextBytes caps the visible text kept for downstream analysis.
const maxTextBytes = 10000

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// extract parses the page and pulls out the title, meta description, visible
// mailto/text emails, phone numbers and outbound links.
func extract(body []byte, defaultRegion string) PageIntel {
	intel := PageIntel{
		Emails:       []string{},
		Phones:       []string{},
		Links:        []string{},
		Technologies: []string{},
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		// Fall back to regex-only extraction over the raw bytes.
		raw := string(body)
		intel.Text = truncate(raw, maxTextBytes)
		intel.Emails = extractEmails(raw)
		intel.Phones = extractPhones(raw, defaultRegion)
		return intel
	}

	var text strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "title":
				if n.FirstChild != nil && intel.Title == "" {
					intel.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				if attrValue(n, "name") == "description" {
					intel.Description = attrValue(n, "content")
				}
			case "a":
				href := attrValue(n, "href")
				if mail, ok := strings.CutPrefix(href, "mailto:"); ok {
					text.WriteString(" " + mail + " ")
				} else if strings.HasPrefix(href, "http") {
					intel.Links = append(intel.Links, href)
				}
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	intel.Text = truncate(strings.Join(strings.Fields(text.String()), " "), maxTextBytes)
	intel.Emails = extractEmails(text.String())
	intel.Phones = extractPhones(text.String(), defaultRegion)
	intel.Technologies = detectTechnologies(body)
	return intel
}

func extractEmails(text string) []string {
	seen := make(map[string]struct{})
	emails := []string{}

	for _, match := range emailPattern.FindAllString(text, -1) {
		email := strings.ToLower(match)
		if ignoredEmail(email) {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}

	sort.Strings(emails)
	return emails
}

func ignoredEmail(email string) bool {
	for _, suffix := range ignoredEmailSuffixes {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}

// extractPhones finds phone-shaped strings and keeps only those that parse
// as valid numbers, normalized to E.164.
func extractPhones(text, defaultRegion string) []string {
	seen := make(map[string]struct{})
	phones := []string{}

	for _, match := range phonePattern.FindAllString(text, -1) {
		num, err := phonenumbers.Parse(match, defaultRegion)
		if err != nil || !phonenumbers.IsValidNumber(num) {
			continue
		}
		formatted := phonenumbers.Format(num, phonenumbers.E164)
		if _, dup := seen[formatted]; dup {
			continue
		}
		seen[formatted] = struct{}{}
		phones = append(phones, formatted)
	}

	sort.Strings(phones)
	return phones
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
