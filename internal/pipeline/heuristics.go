package pipeline

import (
	"regexp"
	"strings"
)

// Pattern matchers for lead contact details in free text. Each returns the
// first match, so callers get deterministic output for a given input.
var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// North-American-style numbers: optional country code, optional
	// parenthesized area code, space/dot/hyphen separators, 3-3-4 grouping.
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	// First pass: capitalized phrase with a legal-entity suffix preceded by
	// at/from/with. Second pass: any suffixed phrase anywhere in the text.
	companyPrecededPattern = regexp.MustCompile(`(?i)(?:at|from|with)\s+([A-Z][a-zA-Z\s&]+(?:Inc|LLC|Corp|Ltd|Company|Co))`)
	companyAnywherePattern = regexp.MustCompile(`(?i)([A-Z][a-zA-Z\s&]+(?:Inc|LLC|Corp|Ltd))`)
)

// ExtractEmail returns the first email address found in text, or nil.
func ExtractEmail(text string) *string {
	if m := emailPattern.FindString(text); m != "" {
		return &m
	}
	return nil
}

// ExtractPhone returns the first phone number found in text, or nil.
func ExtractPhone(text string) *string {
	if m := phonePattern.FindString(text); m != "" {
		return &m
	}
	return nil
}

// ExtractCompany returns the first company name found in text, or nil.
// Matching is a two-pass heuristic over legal-entity suffixes.
func ExtractCompany(text string) *string {
	for _, pattern := range []*regexp.Regexp{companyPrecededPattern, companyAnywherePattern} {
		if m := pattern.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			return &name
		}
	}
	return nil
}
