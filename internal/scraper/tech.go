package scraper

import (
	"bytes"
	"sort"
)

// techSignatures maps a marker substring in the raw page to a product name.
// These are the cheap, reliable fingerprints; anything needing header or DNS
// evidence belongs to the infrastructure probe instead.
var techSignatures = map[string]string{
	"wp-content":            "WordPress",
	"cdn.shopify.com":       "Shopify",
	"static.hsappstatic":    "HubSpot",
	"js.hs-scripts.com":     "HubSpot",
	"googletagmanager.com":  "Google Tag Manager",
	"google-analytics.com":  "Google Analytics",
	"connect.facebook.net":  "Facebook Pixel",
	"js.intercomcdn.com":    "Intercom",
	"widget.intercom.io":    "Intercom",
	"js.driftt.com":         "Drift",
	"snap.licdn.com":        "LinkedIn Insight",
	"cdn.segment.com":       "Segment",
	"js.stripe.com":         "Stripe",
	"assets.calendly.com":   "Calendly",
	"typekit.net":           "Adobe Fonts",
	"cdn.jsdelivr.net":      "jsDelivr CDN",
	"cloudflareinsights":    "Cloudflare Analytics",
	"_next/static":          "Next.js",
	"data-reactroot":        "React",
	"ng-version":            "Angular",
	"data-v-app":            "Vue.js",
	"wix.com":               "Wix",
	"squarespace.com":       "Squarespace",
	"webflow.com":           "Webflow",
	"marketo.net":           "Marketo",
	"pardot.com":            "Pardot",
	"klaviyo.com":           "Klaviyo",
	"hotjar.com":            "Hotjar",
	"usefathom.com":         "Fathom Analytics",
	"plausible.io":          "Plausible",
	"zdassets.com":          "Zendesk",
	"salesforceliveagent":   "Salesforce",
	"recaptcha":             "reCAPTCHA",
}

// detectTechnologies scans the raw markup for known product fingerprints.
func detectTechnologies(body []byte) []string {
	found := make(map[string]struct{})
	for marker, name := range techSignatures {
		if bytes.Contains(body, []byte(marker)) {
			found[name] = struct{}{}
		}
	}

	techs := make([]string, 0, len(found))
	for name := range found {
		techs = append(techs, name)
	}
	sort.Strings(techs)
	return techs
}
