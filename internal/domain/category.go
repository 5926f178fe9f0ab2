package domain

import "strings"

// categoryGroups maps a canonical display category to the provider-specific
// section names it absorbs. Providers disagree on taxonomy (Guardian says
// "Football", NewsAPI says "sports"), so filtering by a canonical name must
// match every synonym. Stored categories are kept verbatim; expansion happens
// on the read path only.
var categoryGroups = map[string][]string{
	"sports":     {"sports", "sport", "football", "soccer", "tennis", "basketball"},
	"politics":   {"politics", "uk news", "us news", "world news", "society"},
	"technology": {"technology", "tech"},
}

// ExpandCategory returns every stored category name a filter value should
// match, case-insensitively. Unknown categories pass through as themselves.
func ExpandCategory(name string) []string {
	if group, ok := categoryGroups[strings.ToLower(strings.TrimSpace(name))]; ok {
		return group
	}
	return []string{name}
}
