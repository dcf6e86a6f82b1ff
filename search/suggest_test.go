package search

import (
	"testing"
	"time"

	"shoplens/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyOf(terms ...string) []models.SearchHistoryRecord {
	records := make([]models.SearchHistoryRecord, 0, len(terms))
	for i, term := range terms {
		records = append(records, models.SearchHistoryRecord{
			QueryText:   term,
			RequestedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	return records
}

func TestBuildSuggestions_HistoryComesFirst(t *testing.T) {
	history := historyOf("headphones", "boots")
	products := []models.Product{
		{ID: "p-1", Title: "Desk Lamp"},
		{ID: "p-2", Title: "Wool Sweater"},
	}

	got := BuildSuggestions(history, products, "", 5)

	require.Len(t, got, 4)
	assert.Equal(t, Suggestion{Value: "headphones", Source: SuggestionSourceHistory}, got[0])
	assert.Equal(t, Suggestion{Value: "boots", Source: SuggestionSourceHistory}, got[1])
	assert.Equal(t, SuggestionSourceCatalog, got[2].Source)
	assert.Equal(t, SuggestionSourceCatalog, got[3].Source)
}

func TestBuildSuggestions_DeduplicatesCaseInsensitively(t *testing.T) {
	history := historyOf("Headphones", "headphones", "HEADPHONES")
	products := []models.Product{{ID: "p-1", Title: "headphones"}}

	got := BuildSuggestions(history, products, "", 5)

	require.Len(t, got, 1)
	assert.Equal(t, "Headphones", got[0].Value)
	assert.Equal(t, SuggestionSourceHistory, got[0].Source)
}

func TestBuildSuggestions_CatalogPaddingMatchesText(t *testing.T) {
	products := []models.Product{
		{ID: "p-1", Title: "Aurora Wireless Headphones"},
		{ID: "p-2", Title: "Desk Lamp"},
		{ID: "p-3", Title: "Aurora Earbuds"},
	}

	got := BuildSuggestions(nil, products, "aurora", 5)

	require.Len(t, got, 2)
	assert.Equal(t, "Aurora Wireless Headphones", got[0].Value)
	assert.Equal(t, "Aurora Earbuds", got[1].Value)
}

func TestBuildSuggestions_RespectsLimit(t *testing.T) {
	history := historyOf("a", "b", "c", "d")
	products := []models.Product{
		{ID: "p-1", Title: "e"},
		{ID: "p-2", Title: "f"},
	}

	got := BuildSuggestions(history, products, "", 5)
	assert.Len(t, got, 5)

	got = BuildSuggestions(history, products, "", 0)
	assert.Len(t, got, SuggestionLimit, "non-positive limit falls back to the default")
}

func TestBuildSuggestions_SkipsBlankValues(t *testing.T) {
	history := historyOf("", "   ", "boots")
	got := BuildSuggestions(history, nil, "", 5)

	require.Len(t, got, 1)
	assert.Equal(t, "boots", got[0].Value)
}
