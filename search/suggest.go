package search

import (
	"strings"

	"shoplens/api/models"
)

// Suggestion sources, reported so the client can style the two kinds apart.
const (
	SuggestionSourceHistory = "history"
	SuggestionSourceCatalog = "catalog"
)

// Suggestion is one typeahead entry.
type Suggestion struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

// BuildSuggestions assembles up to limit entries: the owner's own searches
// first, then catalog titles matching the typed text to fill the remainder.
// Values are deduplicated case-insensitively across both sources.
func BuildSuggestions(history []models.SearchHistoryRecord, products []models.Product, text string, limit int) []Suggestion {
	if limit <= 0 {
		limit = SuggestionLimit
	}
	needle := strings.ToLower(strings.TrimSpace(text))

	suggestions := make([]Suggestion, 0, limit)
	seen := make(map[string]bool, limit)

	add := func(value, source string) bool {
		value = strings.TrimSpace(value)
		key := strings.ToLower(value)
		if value == "" || seen[key] {
			return len(suggestions) < limit
		}
		seen[key] = true
		suggestions = append(suggestions, Suggestion{Value: value, Source: source})
		return len(suggestions) < limit
	}

	for _, rec := range history {
		if !add(rec.QueryText, SuggestionSourceHistory) {
			return suggestions
		}
	}

	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		if !add(p.Title, SuggestionSourceCatalog) {
			return suggestions
		}
	}

	return suggestions
}
