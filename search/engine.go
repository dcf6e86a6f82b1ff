// Package search implements the catalog filter pipeline and suggestion
// builder. Everything here is pure: products come in, a page of results
// comes out, and no state is touched.
package search

import (
	"log"
	"sort"
	"strings"

	"shoplens/api/models"
)

const (
	// DefaultPageSize applies when the request names no page size.
	DefaultPageSize = 20
	// MaxPageSize bounds the page size a caller may request.
	MaxPageSize = 100
	// SuggestionLimit caps the entries returned by the suggestion builder.
	SuggestionLimit = 5
)

// ShouldRecordQuery decides whether a search produces analytics and history
// records. Filter-only browsing (category clicks and the like) is deliberate
// navigation, not a search term, so only non-blank text is worth recording.
func ShouldRecordQuery(text string) bool {
	return strings.TrimSpace(text) != ""
}

// Apply runs the filter pipeline over a freshly fetched product collection:
// sanitize, then each narrowing pass in a fixed order, then sort, then
// paginate. The input slice is never mutated.
func Apply(products []models.Product, opts models.FilterOptions) models.SearchResult {
	matched := sanitize(products)
	matched = filterText(matched, opts.Text)
	matched = filterPriceMin(matched, opts.PriceMin)
	matched = filterPriceMax(matched, opts.PriceMax)
	matched = filterCategory(matched, opts.Category)
	matched = filterCondition(matched, opts.Condition)
	sortProducts(matched, opts.Sort)
	return paginate(matched, opts.Page, opts.PageSize)
}

// sanitize drops products the upstream catalog delivered in an unusable
// shape. They are skipped with a warning rather than surfaced half-formed.
func sanitize(products []models.Product) []models.Product {
	clean := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" || p.Title == "" || p.Price < 0 {
			log.Printf("WARN: dropping malformed catalog product (id=%q title=%q price=%v)", p.ID, p.Title, p.Price)
			continue
		}
		clean = append(clean, p)
	}
	return clean
}

func filterText(products []models.Product, text string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) {
			out = append(out, p)
		}
	}
	return out
}

func filterPriceMin(products []models.Product, min *float64) []models.Product {
	if min == nil {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if p.Price >= *min {
			out = append(out, p)
		}
	}
	return out
}

func filterPriceMax(products []models.Product, max *float64) []models.Product {
	if max == nil {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if p.Price <= *max {
			out = append(out, p)
		}
	}
	return out
}

func filterCategory(products []models.Product, category string) []models.Product {
	if category == "" {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func filterCondition(products []models.Product, condition string) []models.Product {
	if condition == "" {
		return products
	}
	var out []models.Product
	for _, p := range products {
		if strings.EqualFold(p.Condition, condition) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts orders by price when asked. The stable sort keeps catalog
// order among equal prices, and unrecognized sort values leave the input
// order untouched.
func sortProducts(products []models.Product, sortKey string) {
	switch sortKey {
	case models.SortPriceAscending:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case models.SortPriceDescending:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}
}

// paginate slices the matched set into the requested 1-based page and fills
// in the paging metadata. Out-of-range pages yield an empty item list with
// the metadata still describing the full match set.
func paginate(matched []models.Product, page, pageSize int) models.SearchResult {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]models.Product, end-start)
	copy(items, matched[start:end])

	return models.SearchResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
