// Package analytics composes read-only reporting views over the stores and
// the catalog. Nothing here mutates data; every view is one consistent read.
package analytics

import (
	"context"
	"fmt"
	"time"

	"shoplens/api/catalog"
	"shoplens/api/errs"
	"shoplens/api/models"
	"shoplens/api/store"
)

// Caller-facing limits. Zero means "use the default"; anything outside
// [1, max] is rejected as a validation error.
const (
	DefaultTopProducts = 6
	MaxTopProducts     = 20

	DefaultTopTerms = 10
	MaxTopTerms     = 50

	DefaultTrendDays = 7
	MaxTrendDays     = 90

	DefaultSearchExport = 1000
	MaxSearchExport     = 10000

	DefaultClickExport = 100
	MaxClickExport     = 1000
)

// Aggregator serves the reporting views. Stateless apart from its
// collaborators; safe for concurrent use.
type Aggregator struct {
	history store.HistoryStore
	clicks  store.ClickStore
	queries store.QueryStore
	catalog catalog.Source

	now func() time.Time
}

// NewAggregator wires the aggregator to the stores and the catalog source
// used for the product join.
func NewAggregator(history store.HistoryStore, clicks store.ClickStore, queries store.QueryStore, source catalog.Source) *Aggregator {
	return &Aggregator{
		history: history,
		clicks:  clicks,
		queries: queries,
		catalog: source,
		now:     time.Now,
	}
}

// TopProducts returns the most clicked products joined with live catalog
// data. Clicks on products the catalog no longer carries are dropped from
// the view rather than shown half-resolved.
func (a *Aggregator) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	limit, err := boundedLimit(limit, DefaultTopProducts, MaxTopProducts, "limit")
	if err != nil {
		return nil, err
	}

	counts, err := a.clicks.TopProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: top products: %v", errs.ErrStoreFailure, err)
	}

	products, err := a.catalog.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	results := make([]models.TopProduct, 0, len(counts))
	for _, c := range counts {
		product, ok := byID[c.ProductID]
		if !ok {
			continue
		}
		results = append(results, models.TopProduct{Product: product, Clicks: c.Count})
	}
	return results, nil
}

// TopTerms returns the most searched terms, lower-cased, with empty text and
// the legacy category-browse placeholder excluded.
func (a *Aggregator) TopTerms(ctx context.Context, limit int) ([]models.TermCount, error) {
	limit, err := boundedLimit(limit, DefaultTopTerms, MaxTopTerms, "limit")
	if err != nil {
		return nil, err
	}

	terms, err := a.history.TopTerms(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: top terms: %v", errs.ErrStoreFailure, err)
	}
	return terms, nil
}

// Trends returns per-day search activity for the last N calendar days (UTC),
// today included, ordered by date ascending.
func (a *Aggregator) Trends(ctx context.Context, days int) ([]models.DailyTrend, error) {
	days, err := boundedLimit(days, DefaultTrendDays, MaxTrendDays, "days")
	if err != nil {
		return nil, err
	}

	since := a.now().UTC().AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)
	trends, err := a.history.DailyCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%w: trends: %v", errs.ErrStoreFailure, err)
	}
	return trends, nil
}

// Stats returns the multi-facet statistics snapshot.
func (a *Aggregator) Stats(ctx context.Context) (models.SearchStats, error) {
	stats, err := a.history.Stats(ctx)
	if err != nil {
		return stats, fmt.Errorf("%w: stats: %v", errs.ErrStoreFailure, err)
	}
	return stats, nil
}

// AllSearches exports the anonymized query stream, newest first.
func (a *Aggregator) AllSearches(ctx context.Context, limit int) ([]models.SearchQueryRecord, error) {
	limit, err := boundedLimit(limit, DefaultSearchExport, MaxSearchExport, "limit")
	if err != nil {
		return nil, err
	}

	records, err := a.queries.All(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: search export: %v", errs.ErrStoreFailure, err)
	}
	return records, nil
}

// AllClicks exports recent clicks, newest first. The export type carries no
// owner field; that projection is the privacy contract.
func (a *Aggregator) AllClicks(ctx context.Context, limit int) ([]models.ClickExport, error) {
	limit, err := boundedLimit(limit, DefaultClickExport, MaxClickExport, "limit")
	if err != nil {
		return nil, err
	}

	records, err := a.clicks.All(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: click export: %v", errs.ErrStoreFailure, err)
	}
	return records, nil
}

func boundedLimit(limit, def, max int, field string) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 1 || limit > max {
		return 0, errs.Validation(field, fmt.Sprintf("must be between 1 and %d", max))
	}
	return limit, nil
}
