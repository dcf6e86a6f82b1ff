package catalog

import (
	"context"

	"shoplens/api/models"
)

// FixtureSource serves a fixed in-process product collection for demos and
// tests, selected at startup by CATALOG_DUMMY_MODE. It never fails.
type FixtureSource struct{}

// NewFixtureSource returns the fixture-backed catalog source.
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{}
}

// FetchProducts returns a copy of the fixture collection so callers can
// filter and sort without touching the shared slice.
func (s *FixtureSource) FetchProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(fixtureProducts))
	copy(out, fixtureProducts)
	return out, nil
}

var fixtureProducts = []models.Product{
	{ID: "p-1001", Title: "Aurora Wireless Headphones", Description: "Over-ear headphones with active noise cancelling", Brand: "Aurora", Category: "electronics", Condition: "new", Price: 129.99, ImageURL: "https://img.shoplens.dev/p-1001.jpg"},
	{ID: "p-1002", Title: "Aurora Earbuds Mini", Description: "Compact true wireless earbuds", Brand: "Aurora", Category: "electronics", Condition: "new", Price: 59.50, ImageURL: "https://img.shoplens.dev/p-1002.jpg"},
	{ID: "p-1003", Title: "Volt USB-C Charger 65W", Description: "GaN fast charger with two ports", Brand: "Volt", Category: "electronics", Condition: "new", Price: 34.00, ImageURL: "https://img.shoplens.dev/p-1003.jpg"},
	{ID: "p-1004", Title: "Volt Power Bank 20K", Description: "20000mAh portable battery", Brand: "Volt", Category: "electronics", Condition: "refurbished", Price: 42.90, ImageURL: "https://img.shoplens.dev/p-1004.jpg"},
	{ID: "p-2001", Title: "Trailhead Hiking Boots", Description: "Waterproof leather boots for rough terrain", Brand: "Trailhead", Category: "footwear", Condition: "new", Price: 149.00, ImageURL: "https://img.shoplens.dev/p-2001.jpg"},
	{ID: "p-2002", Title: "Trailhead Running Shoes", Description: "Lightweight trail runners", Brand: "Trailhead", Category: "footwear", Condition: "used", Price: 48.75, ImageURL: "https://img.shoplens.dev/p-2002.jpg"},
	{ID: "p-3001", Title: "Nordic Wool Sweater", Description: "Hand-knit merino wool sweater", Brand: "Nordic Knits", Category: "clothing", Condition: "new", Price: 89.00, ImageURL: "https://img.shoplens.dev/p-3001.jpg"},
	{ID: "p-3002", Title: "Nordic Rain Jacket", Description: "Packable waterproof shell", Brand: "Nordic Knits", Category: "clothing", Condition: "new", Price: 119.95, ImageURL: "https://img.shoplens.dev/p-3002.jpg"},
	{ID: "p-4001", Title: "Summit Camping Stove", Description: "Single-burner backpacking stove", Brand: "Summit Gear", Category: "outdoors", Condition: "new", Price: 64.25, ImageURL: "https://img.shoplens.dev/p-4001.jpg"},
	{ID: "p-4002", Title: "Summit Trekking Poles", Description: "Collapsible carbon trekking poles, pair", Brand: "Summit Gear", Category: "outdoors", Condition: "used", Price: 54.00, ImageURL: "https://img.shoplens.dev/p-4002.jpg"},
	{ID: "p-5001", Title: "Lumen Desk Lamp", Description: "Dimmable LED desk lamp with USB port", Brand: "Lumen", Category: "home", Condition: "new", Price: 39.99, ImageURL: "https://img.shoplens.dev/p-5001.jpg"},
	{ID: "p-5002", Title: "Lumen Floor Lamp", Description: "Three-way standing lamp", Brand: "Lumen", Category: "home", Condition: "refurbished", Price: 74.50, ImageURL: "https://img.shoplens.dev/p-5002.jpg"},
}
