// Package pattern defines the closed set of corporate email local-part
// templates, plus the pure functions that construct candidate addresses from
// them and reverse-engineer which template a confirmed address matches.
package pattern

import (
	"strings"
	"unicode"
)

// Template is a symbolic tag for one local-part construction rule. The tag
// values double as the stored representation in the pattern store, so they
// must stay stable.
type Template string

const (
	First            Template = "{fn}"      // sam@
	FirstDotLast     Template = "{fn}.{ln}" // sam.altman@
	FirstLast        Template = "{fn}{ln}"  // samaltman@
	InitialLast      Template = "{fi}{ln}"  // saltman@
	InitialDotLast   Template = "{fi}.{ln}" // s.altman@
	FirstInitial     Template = "{fn}{li}"  // sama@
	FirstDotInitial  Template = "{fn}.{li}" // sam.a@
	Last             Template = "{ln}"      // altman@
	LastDotFirst     Template = "{ln}.{fn}" // altman.sam@
	LastFirst        Template = "{ln}{fn}"  // altmansam@
	FirstUscoreLast  Template = "{fn}_{ln}" // sam_altman@
	FirstDashLast    Template = "{fn}-{ln}" // sam-altman@
	InitialDashLast  Template = "{fi}-{ln}" // s-altman@
	FirstDashInitial Template = "{fn}-{li}" // sam-a@
)

// generationOrder is the fixed priority order of the standard corporate
// templates. Candidate lists follow this order exactly.
var generationOrder = [...]Template{
	First,
	FirstDotLast,
	FirstLast,
	InitialLast,
	InitialDotLast,
	FirstInitial,
	FirstDotInitial,
	Last,
	LastDotFirst,
	LastFirst,
	FirstUscoreLast,
	FirstDashLast,
	InitialDashLast,
	FirstDashInitial,
}

// deductionOrder is the fixed order in which templates are tested against a
// confirmed-valid local part. More specific shapes come before bare tokens so
// that, for example, "sam.altman" never matches {fn} first.
var deductionOrder = [...]Template{
	FirstDotLast,
	First,
	FirstLast,
	InitialLast,
	InitialDotLast,
	FirstInitial,
	FirstDotInitial,
	Last,
	LastDotFirst,
	LastFirst,
	FirstUscoreLast,
	FirstDashLast,
	InitialDashLast,
	FirstDashInitial,
}

// GenerationOrder returns the standard templates in priority order.
func GenerationOrder() []Template {
	order := make([]Template, len(generationOrder))
	copy(order[:], generationOrder[:])
	return order
}

// NameParts holds the normalized name components used for template
// substitution.
type NameParts struct {
	First        string
	Last         string
	FirstInitial string
	LastInitial  string
}

// SplitName derives NameParts from a full name: lower-cased, trimmed, split
// on whitespace, first and last tokens taken, middle tokens ignored.
// ok is false when fewer than two tokens are present.
func SplitName(fullName string) (parts NameParts, ok bool) {
	tokens := Tokens(fullName)
	if len(tokens) < 2 {
		return NameParts{}, false
	}
	return PartsOf(tokens[0], tokens[len(tokens)-1]), true
}

// Tokens returns the normalized whitespace-separated tokens of a full name.
func Tokens(fullName string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(fullName)))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if folded := foldASCII(f); folded != "" {
			tokens = append(tokens, folded)
		}
	}
	return tokens
}

// PartsOf builds NameParts from already-isolated first and last names.
func PartsOf(first, last string) NameParts {
	first = foldASCII(strings.ToLower(strings.TrimSpace(first)))
	last = foldASCII(strings.ToLower(strings.TrimSpace(last)))

	parts := NameParts{First: first, Last: last}
	if first != "" {
		parts.FirstInitial = first[:1]
	}
	if last != "" {
		parts.LastInitial = last[:1]
	}
	return parts
}

// foldASCII drops non-ASCII runes so templates always produce mailbox-safe
// local parts.
func foldASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LocalPart materializes the template's local part for the given name.
func (t Template) LocalPart(p NameParts) string {
	switch t {
	case First:
		return p.First
	case FirstDotLast:
		return p.First + "." + p.Last
	case FirstLast:
		return p.First + p.Last
	case InitialLast:
		return p.FirstInitial + p.Last
	case InitialDotLast:
		return p.FirstInitial + "." + p.Last
	case FirstInitial:
		return p.First + p.LastInitial
	case FirstDotInitial:
		return p.First + "." + p.LastInitial
	case Last:
		return p.Last
	case LastDotFirst:
		return p.Last + "." + p.First
	case LastFirst:
		return p.Last + p.First
	case FirstUscoreLast:
		return p.First + "_" + p.Last
	case FirstDashLast:
		return p.First + "-" + p.Last
	case InitialDashLast:
		return p.FirstInitial + "-" + p.Last
	case FirstDashInitial:
		return p.First + "-" + p.LastInitial
	}
	return ""
}

// Construct builds a full candidate address from a template, name parts and
// domain.
func Construct(t Template, p NameParts, domain string) string {
	return t.LocalPart(p) + "@" + domain
}

// Deduce reverse-engineers which template produced a confirmed-valid email
// address. It tests the local part against the closed template set in fixed
// order and returns the first exact match; ok is false when no template
// matches (the pattern is simply not recorded).
func Deduce(validEmail, firstName, lastName string) (Template, bool) {
	if validEmail == "" || firstName == "" || lastName == "" {
		return "", false
	}

	localPart := strings.ToLower(validEmail)
	if at := strings.IndexByte(localPart, '@'); at >= 0 {
		localPart = localPart[:at]
	}

	parts := PartsOf(firstName, lastName)
	if parts.First == "" || parts.Last == "" {
		return "", false
	}

	for _, t := range deductionOrder {
		if localPart == t.LocalPart(parts) {
			return t, true
		}
	}
	return "", false
}

// Valid reports whether the tag is one of the known templates.
func (t Template) Valid() bool {
	for _, known := range generationOrder {
		if t == known {
			return true
		}
	}
	return false
}
