package models

import "strconv"

// Product is the normalized shape of one catalog entry fetched from the
// external catalog API. Products are never stored locally; every search
// works on a collection fetched fresh from the collaborator.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Sort values recognized by the filter engine.
const (
	SortPriceAscending  = "price-ascending"
	SortPriceDescending = "price-descending"
)

// FilterOptions is the full set of recognized search options. PriceMin and
// PriceMax are inclusive bounds; nil means unbounded on that side.
type FilterOptions struct {
	Text      string   `json:"text"`
	PriceMin  *float64 `json:"priceMin,omitempty"`
	PriceMax  *float64 `json:"priceMax,omitempty"`
	Category  string   `json:"category"`
	Condition string   `json:"condition"`
	Sort      string   `json:"sort,omitempty"`
	Page      int      `json:"page"`
	PageSize  int      `json:"pageSize"`
}

// FilterMap flattens the set filters into the name->value mapping persisted on
// history records. Unset filters are omitted.
func (o FilterOptions) FilterMap() map[string]string {
	m := make(map[string]string)
	if o.Category != "" {
		m["category"] = o.Category
	}
	if o.Condition != "" {
		m["condition"] = o.Condition
	}
	if o.PriceMin != nil || o.PriceMax != nil {
		m["priceRange"] = formatPriceRange(o.PriceMin, o.PriceMax)
	}
	return m
}

// SortColumns splits Sort into the field/direction pair persisted on history
// records. Empty strings mean "no sort requested".
func (o FilterOptions) SortColumns() (field, direction string) {
	switch o.Sort {
	case SortPriceAscending:
		return "price", "asc"
	case SortPriceDescending:
		return "price", "desc"
	}
	return "", ""
}

func formatPriceRange(min, max *float64) string {
	var lo, hi string
	if min != nil {
		lo = strconv.FormatFloat(*min, 'f', -1, 64)
	}
	if max != nil {
		hi = strconv.FormatFloat(*max, 'f', -1, 64)
	}
	return lo + "-" + hi
}

// SearchResult is one page of filtered products plus pagination metadata.
type SearchResult struct {
	Items      []Product `json:"items"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
	HasMore    bool      `json:"hasMore"`
}
