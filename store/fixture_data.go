// api/store/fixture_data.go
package store

import (
	"context"
	"fmt"
	"time"

	"shoplens/api/models"
)

// SeedFixtures loads demo records into the in-memory stores so the analytics
// endpoints return something meaningful in dummy mode. Timestamps are laid
// out over the past few days so the trends view has shape; ids and terms are
// fixed so the aggregates are predictable.
func SeedFixtures(history *MemoryHistoryStore, clicks *MemoryClickStore, queries *MemoryQueryStore) {
	ctx := context.Background()
	now := time.Now().UTC()

	searches := []struct {
		daysAgo  int
		owner    string
		text     string
		category string
		results  []string
	}{
		{0, "anonymous_demo-1", "headphones", "electronics", []string{"p-1001", "p-1002"}},
		{0, "anonymous_demo-2", "headphones", "electronics", []string{"p-1001", "p-1002"}},
		{1, "anonymous_demo-1", "charger", "electronics", []string{"p-1003"}},
		{1, "anonymous_demo-3", "boots", "footwear", []string{"p-2001"}},
		{2, "anonymous_demo-2", "lamp", "home", []string{"p-5001", "p-5002"}},
		{3, "anonymous_demo-3", "sweater", "clothing", []string{"p-3001"}},
		{3, "anonymous_demo-1", "headphones", "", []string{"p-1001", "p-1002"}},
		{5, "anonymous_demo-2", "stove", "outdoors", []string{"p-4001"}},
	}
	for i, s := range searches {
		filters := map[string]string{}
		if s.category != "" {
			filters["category"] = s.category
		}
		history.Append(ctx, models.SearchHistoryRecord{
			ID:          fmt.Sprintf("fixture-history-%d", i+1),
			OwnerID:     s.owner,
			QueryText:   s.text,
			Filters:     filters,
			Page:        1,
			PageSize:    20,
			RequestedAt: now.AddDate(0, 0, -s.daysAgo).Add(-time.Duration(i) * time.Minute),
			ResultIDs:   s.results,
		})
		queries.Append(ctx, models.SearchQueryRecord{
			Text:       s.text,
			OccurredAt: now.AddDate(0, 0, -s.daysAgo).Add(-time.Duration(i) * time.Minute),
		})
	}

	clickSeeds := []struct {
		daysAgo   int
		owner     string
		productID string
		name      string
	}{
		{0, "anonymous_demo-1", "p-1001", "Aurora Wireless Headphones"},
		{0, "anonymous_demo-2", "p-1001", "Aurora Wireless Headphones"},
		{1, "anonymous_demo-1", "p-1001", "Aurora Wireless Headphones"},
		{1, "anonymous_demo-3", "p-2001", "Trailhead Hiking Boots"},
		{2, "anonymous_demo-2", "p-5001", "Lumen Desk Lamp"},
		{2, "anonymous_demo-2", "p-1003", "Volt USB-C Charger 65W"},
	}
	for i, c := range clickSeeds {
		clicks.Append(ctx, models.ClickRecord{
			ID:          fmt.Sprintf("fixture-click-%d", i+1),
			ProductID:   c.productID,
			ProductName: c.name,
			OccurredAt:  now.AddDate(0, 0, -c.daysAgo).Add(-time.Duration(i) * time.Minute),
			OwnerID:     c.owner,
		})
	}
}
