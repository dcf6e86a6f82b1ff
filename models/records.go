// api/models/records.go
package models

import "time"

// CategoryBrowsePlaceholder is a legacy sentinel some older clients wrote as
// query text for filter-only browsing. It is excluded from term aggregation.
const CategoryBrowsePlaceholder = "category-browse"

// SearchHistoryRecord is one owner-scoped search, durable until the owner (or
// the expiry sweep, for anonymous owners) deletes it.
type SearchHistoryRecord struct {
	ID            string            `json:"id"`
	OwnerID       string            `json:"ownerId"`
	QueryText     string            `json:"queryText"`
	Filters       map[string]string `json:"filters,omitempty"`
	SortField     string            `json:"sortField,omitempty"`
	SortDirection string            `json:"sortDirection,omitempty"`
	Page          int               `json:"page"`
	PageSize      int               `json:"pageSize"`
	RequestedAt   time.Time         `json:"requestedAt"`
	ResultIDs     []string          `json:"resultIds"`
}

// SearchQueryRecord is the anonymized analytics stream: one entry per search
// with non-empty query text, deliberately owner-less and never deleted by
// session expiry.
type SearchQueryRecord struct {
	Text       string    `json:"text"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ClickRecord is one product click. Records with an anonymous-derived owner
// are cascade-deleted when the session expires; records with a stable
// authenticated owner are permanent.
type ClickRecord struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	OccurredAt  time.Time `json:"occurredAt"`
	OwnerID     string    `json:"ownerId,omitempty"`
}

// ClickExport is the reporting projection of a click. It carries no owner
// field on purpose: owner identity must never reach the analytics
// collaborator.
type ClickExport struct {
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// ProductClickCount is a click-count aggregate keyed by product id.
type ProductClickCount struct {
	ProductID string `json:"productId"`
	Count     int64  `json:"count"`
}

// TopProduct joins a click-count aggregate with live catalog data.
type TopProduct struct {
	Product Product `json:"product"`
	Clicks  int64   `json:"clicks"`
}

// TermCount is a search-term aggregate (lower-cased grouping).
type TermCount struct {
	Term         string    `json:"term"`
	Count        int64     `json:"count"`
	LastSearched time.Time `json:"lastSearched"`
}

// DailyTrend is one UTC calendar day of search activity.
type DailyTrend struct {
	Date               string `json:"date"` // YYYY-MM-DD
	SearchCount        int64  `json:"searchCount"`
	DistinctOwnerCount int64  `json:"distinctOwnerCount"`
}

// RecentSearch is a stats-view line: a query and how many results it had.
type RecentSearch struct {
	QueryText   string    `json:"queryText"`
	RequestedAt time.Time `json:"requestedAt"`
	ResultCount int       `json:"resultCount"`
}

// SearchStats is the multi-facet statistics view, computed from a single
// consistent snapshot of the history store.
type SearchStats struct {
	TotalSearches     int64            `json:"totalSearches"`
	ByCategoryFilter  map[string]int64 `json:"countsByCategoryFilter"`
	ByConditionFilter map[string]int64 `json:"countsByConditionFilter"`
	RecentSearches    []RecentSearch   `json:"recentSearches"`
}

// ClickRequest is the body of POST /clicks.
type ClickRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	ProductName string `json:"productName" binding:"required"`
}

// CloseSessionRequest is the optional body of POST /session/close; when set it
// overrides the X-Session-Id header.
type CloseSessionRequest struct {
	SessionID string `json:"sessionId"`
}
