package braindump

import "strings"

type tagRule struct {
	tag      string
	keywords []string
}

// tagRules is checked in order; the order defines the order of emitted tags.
var tagRules = []tagRule{
	{tag: "academic", keywords: []string{"exam", "test"}},
	{tag: "deadline", keywords: []string{"deadline", "due"}},
	{tag: "social", keywords: []string{"relationship", "friend"}},
	{tag: "work", keywords: []string{"work", "job"}},
	{tag: "family", keywords: []string{"family", "parent"}},
	{tag: "financial", keywords: []string{"money", "financial"}},
}

// ExtractTags derives topic tags from free text using case-insensitive
// substring matching. Each tag appears at most once.
func ExtractTags(text string) []string {
	tags := make([]string, 0, len(tagRules))
	lower := strings.ToLower(text)
	if lower == "" {
		return tags
	}
	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	return tags
}

// KnownTags lists the closed tag vocabulary in check order.
func KnownTags() []string {
	out := make([]string, 0, len(tagRules))
	for _, rule := range tagRules {
		out = append(out, rule.tag)
	}
	return out
}
