package search

import (
	"fmt"
	"testing"

	"shoplens/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func testProducts() []models.Product {
	return []models.Product{
		{ID: "p-1", Title: "Aurora Wireless Headphones", Description: "Noise cancelling", Brand: "Aurora", Category: "electronics", Condition: "new", Price: 129.99},
		{ID: "p-2", Title: "Earbuds Mini", Description: "Compact earbuds", Brand: "Aurora", Category: "electronics", Condition: "new", Price: 59.50},
		{ID: "p-3", Title: "Hiking Boots", Description: "Waterproof boots", Brand: "Trailhead", Category: "footwear", Condition: "used", Price: 48.75},
		{ID: "p-4", Title: "Wool Sweater", Description: "Merino wool", Brand: "Nordic Knits", Category: "clothing", Condition: "new", Price: 89.00},
		{ID: "p-5", Title: "Desk Lamp", Description: "Dimmable LED with aurora glow mode", Brand: "Lumen", Category: "home", Condition: "refurbished", Price: 39.99},
	}
}

func TestApply_TextMatchesTitleDescriptionBrand(t *testing.T) {
	res := Apply(testProducts(), models.FilterOptions{Text: "AURORA"})

	// Title hit (p-1), brand hit (p-2), description hit (p-5).
	require.Equal(t, 3, res.Total)
	ids := []string{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID}
	assert.Equal(t, []string{"p-1", "p-2", "p-5"}, ids)
}

func TestApply_PriceBoundsAreInclusive(t *testing.T) {
	res := Apply(testProducts(), models.FilterOptions{PriceMin: ptr(48.75), PriceMax: ptr(89.00)})

	require.Equal(t, 3, res.Total)
	for _, p := range res.Items {
		assert.GreaterOrEqual(t, p.Price, 48.75)
		assert.LessOrEqual(t, p.Price, 89.00)
	}
}

func TestApply_CategoryAndConditionExactCaseInsensitive(t *testing.T) {
	res := Apply(testProducts(), models.FilterOptions{Category: "Electronics"})
	assert.Equal(t, 2, res.Total)

	res = Apply(testProducts(), models.FilterOptions{Category: "electro"})
	assert.Equal(t, 0, res.Total, "category match is exact, not substring")

	res = Apply(testProducts(), models.FilterOptions{Condition: "NEW"})
	assert.Equal(t, 3, res.Total)
}

func TestApply_CombinedFiltersNarrow(t *testing.T) {
	res := Apply(testProducts(), models.FilterOptions{
		Text:      "aurora",
		Category:  "electronics",
		PriceMax:  ptr(100),
		Condition: "new",
	})

	require.Equal(t, 1, res.Total)
	assert.Equal(t, "p-2", res.Items[0].ID)
}

func TestApply_SortByPrice(t *testing.T) {
	res := Apply(testProducts(), models.FilterOptions{Sort: models.SortPriceAscending})
	require.Equal(t, 5, res.Total)
	for i := 1; i < len(res.Items); i++ {
		assert.LessOrEqual(t, res.Items[i-1].Price, res.Items[i].Price)
	}

	res = Apply(testProducts(), models.FilterOptions{Sort: models.SortPriceDescending})
	for i := 1; i < len(res.Items); i++ {
		assert.GreaterOrEqual(t, res.Items[i-1].Price, res.Items[i].Price)
	}
}

func TestApply_SortIsStableAndDoesNotMutateInput(t *testing.T) {
	products := []models.Product{
		{ID: "a", Title: "A", Price: 10},
		{ID: "b", Title: "B", Price: 10},
		{ID: "c", Title: "C", Price: 5},
	}
	input := make([]models.Product, len(products))
	copy(input, products)

	res := Apply(products, models.FilterOptions{Sort: models.SortPriceAscending})

	// Equal prices keep catalog order.
	require.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"c", "a", "b"}, []string{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID})
	// The caller's slice is untouched.
	assert.Equal(t, input, products)
}

func TestApply_SanitizeDropsMalformedProducts(t *testing.T) {
	products := []models.Product{
		{ID: "", Title: "No ID", Price: 10},
		{ID: "p-2", Title: "", Price: 10},
		{ID: "p-3", Title: "Negative", Price: -1},
		{ID: "p-4", Title: "Fine", Price: 10},
	}

	res := Apply(products, models.FilterOptions{})
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "p-4", res.Items[0].ID)
}

func TestApply_Pagination(t *testing.T) {
	products := make([]models.Product, 25)
	for i := range products {
		products[i] = models.Product{ID: fmt.Sprintf("p-%02d", i), Title: fmt.Sprintf("Product %02d", i), Price: float64(i)}
	}

	page1 := Apply(products, models.FilterOptions{Page: 1, PageSize: 10})
	assert.Equal(t, 25, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Len(t, page1.Items, 10)
	assert.True(t, page1.HasMore)
	assert.Equal(t, "p-00", page1.Items[0].ID)

	page3 := Apply(products, models.FilterOptions{Page: 3, PageSize: 10})
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.HasMore)
	assert.Equal(t, "p-20", page3.Items[0].ID)

	// Pages never overlap and never lose items.
	page2 := Apply(products, models.FilterOptions{Page: 2, PageSize: 10})
	seen := map[string]bool{}
	for _, page := range []models.SearchResult{page1, page2, page3} {
		for _, p := range page.Items {
			assert.False(t, seen[p.ID], "duplicate %s across pages", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestApply_PageBeyondDataIsEmptyButKeepsMetadata(t *testing.T) {
	res := Apply(testProducts(), models.FilterOptions{Page: 9, PageSize: 10})

	assert.Empty(t, res.Items)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	assert.False(t, res.HasMore)
	assert.Equal(t, 9, res.Page)
}

func TestApply_DefaultsForPageAndPageSize(t *testing.T) {
	res := Apply(testProducts(), models.FilterOptions{})
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, DefaultPageSize, res.PageSize)

	res = Apply(testProducts(), models.FilterOptions{Page: -3, PageSize: 100000})
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, MaxPageSize, res.PageSize)
}

func TestApply_IsDeterministic(t *testing.T) {
	opts := models.FilterOptions{Text: "aurora", Sort: models.SortPriceAscending, Page: 1, PageSize: 2}

	first := Apply(testProducts(), opts)
	second := Apply(testProducts(), opts)
	assert.Equal(t, first, second)
}

func TestShouldRecordQuery(t *testing.T) {
	assert.False(t, ShouldRecordQuery(""))
	assert.False(t, ShouldRecordQuery("   "))
	assert.False(t, ShouldRecordQuery("\t\n"))
	assert.True(t, ShouldRecordQuery("headphones"))
	assert.True(t, ShouldRecordQuery("  headphones  "))
}
