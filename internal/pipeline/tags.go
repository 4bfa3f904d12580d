package pipeline

import "strings"

// requirementCategory pairs a category tag with its trigger keywords.
// A slice keeps iteration order stable so output is deterministic.
type requirementCategory struct {
	tag      string
	keywords []string
}

var requirementCategories = []requirementCategory{
	{"integration", []string{"integrate", "integration", "connect", "api"}},
	{"customization", []string{"custom", "customize", "tailor", "specific"}},
	{"scalability", []string{"scale", "scalable", "growth", "expand"}},
	{"security", []string{"security", "secure", "encryption", "compliance"}},
	{"support", []string{"support", "help", "assistance", "training"}},
}

// TagRequirements maps text to requirement category tags by keyword
// membership. A category is included when any of its keywords appears as a
// substring of the lowercased text.
func TagRequirements(text string) []string {
	lower := strings.ToLower(text)

	var tags []string
	for _, cat := range requirementCategories {
		if containsAny(lower, cat.keywords...) {
			tags = append(tags, cat.tag)
		}
	}
	return tags
}
