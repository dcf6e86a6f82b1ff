// api/store/memory_store.go
//
// In-memory store implementations with the same contracts as the Postgres
// and ClickHouse ones. Selected by the dummy-mode switches at startup; also
// the substrate the aggregation tests run against.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shoplens/api/models"
)

// MemoryHistoryStore is a mutex-guarded HistoryStore.
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	records []models.SearchHistoryRecord
}

// NewMemoryHistoryStore creates an empty in-memory history store.
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{}
}

func (s *MemoryHistoryStore) Append(ctx context.Context, rec models.SearchHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryHistoryStore) FindByOwner(ctx context.Context, ownerID string, limit int, newestFirst bool) ([]models.SearchHistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	s.mu.RLock()
	var matched []models.SearchHistoryRecord
	for _, rec := range s.records {
		if rec.OwnerID == ownerID {
			matched = append(matched, rec)
		}
	}
	s.mu.RUnlock()

	sortHistoryByTime(matched, newestFirst)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryHistoryStore) FindByOwnerMatching(ctx context.Context, ownerID, substr string, limit int) ([]models.SearchHistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	needle := strings.ToLower(substr)

	s.mu.RLock()
	var matched []models.SearchHistoryRecord
	for _, rec := range s.records {
		if rec.OwnerID == ownerID && strings.Contains(strings.ToLower(rec.QueryText), needle) {
			matched = append(matched, rec)
		}
	}
	s.mu.RUnlock()

	sortHistoryByTime(matched, true)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryHistoryStore) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []models.SearchHistoryRecord
	var deleted int64
	for _, rec := range s.records {
		if rec.OwnerID == ownerID {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return deleted, nil
}

func (s *MemoryHistoryStore) DeleteOne(ctx context.Context, id, ownerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id && rec.OwnerID == ownerID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryHistoryStore) TopTerms(ctx context.Context, limit int) ([]models.TermCount, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	s.mu.RLock()
	grouped := map[string]*models.TermCount{}
	for _, rec := range s.records {
		term := strings.ToLower(rec.QueryText)
		if term == "" || term == models.CategoryBrowsePlaceholder {
			continue
		}
		tc, ok := grouped[term]
		if !ok {
			tc = &models.TermCount{Term: term}
			grouped[term] = tc
		}
		tc.Count++
		if rec.RequestedAt.After(tc.LastSearched) {
			tc.LastSearched = rec.RequestedAt
		}
	}
	s.mu.RUnlock()

	results := make([]models.TermCount, 0, len(grouped))
	for _, tc := range grouped {
		results = append(results, *tc)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Term < results[j].Term
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryHistoryStore) DailyCounts(ctx context.Context, since time.Time) ([]models.DailyTrend, error) {
	type dayAgg struct {
		searches int64
		owners   map[string]bool
	}

	s.mu.RLock()
	days := map[string]*dayAgg{}
	for _, rec := range s.records {
		if rec.RequestedAt.Before(since) {
			continue
		}
		day := rec.RequestedAt.UTC().Format("2006-01-02")
		agg, ok := days[day]
		if !ok {
			agg = &dayAgg{owners: map[string]bool{}}
			days[day] = agg
		}
		agg.searches++
		agg.owners[rec.OwnerID] = true
	}
	s.mu.RUnlock()

	results := make([]models.DailyTrend, 0, len(days))
	for day, agg := range days {
		results = append(results, models.DailyTrend{
			Date:               day,
			SearchCount:        agg.searches,
			DistinctOwnerCount: int64(len(agg.owners)),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results, nil
}

func (s *MemoryHistoryStore) Stats(ctx context.Context) (models.SearchStats, error) {
	stats := models.SearchStats{
		ByCategoryFilter:  map[string]int64{},
		ByConditionFilter: map[string]int64{},
		RecentSearches:    []models.RecentSearch{},
	}

	s.mu.RLock()
	stats.TotalSearches = int64(len(s.records))
	recent := make([]models.SearchHistoryRecord, len(s.records))
	copy(recent, s.records)
	for _, rec := range s.records {
		if v := rec.Filters["category"]; v != "" {
			stats.ByCategoryFilter[v]++
		}
		if v := rec.Filters["condition"]; v != "" {
			stats.ByConditionFilter[v]++
		}
	}
	s.mu.RUnlock()

	sortHistoryByTime(recent, true)
	if len(recent) > statsRecentLimit {
		recent = recent[:statsRecentLimit]
	}
	for _, rec := range recent {
		stats.RecentSearches = append(stats.RecentSearches, models.RecentSearch{
			QueryText:   rec.QueryText,
			RequestedAt: rec.RequestedAt,
			ResultCount: len(rec.ResultIDs),
		})
	}
	return stats, nil
}

func sortHistoryByTime(records []models.SearchHistoryRecord, newestFirst bool) {
	sort.SliceStable(records, func(i, j int) bool {
		if newestFirst {
			return records[i].RequestedAt.After(records[j].RequestedAt)
		}
		return records[i].RequestedAt.Before(records[j].RequestedAt)
	})
}

// MemoryClickStore is a mutex-guarded ClickStore.
type MemoryClickStore struct {
	mu      sync.RWMutex
	records []models.ClickRecord
}

// NewMemoryClickStore creates an empty in-memory click store.
func NewMemoryClickStore() *MemoryClickStore {
	return &MemoryClickStore{}
}

func (s *MemoryClickStore) Append(ctx context.Context, rec models.ClickRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryClickStore) FindByOwner(ctx context.Context, ownerID string, limit int, newestFirst bool) ([]models.ClickRecord, error) {
	if limit <= 0 {
		limit = DefaultClickLimit
	}

	s.mu.RLock()
	var matched []models.ClickRecord
	for _, rec := range s.records {
		if rec.OwnerID == ownerID {
			matched = append(matched, rec)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if newestFirst {
			return matched[i].OccurredAt.After(matched[j].OccurredAt)
		}
		return matched[i].OccurredAt.Before(matched[j].OccurredAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryClickStore) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []models.ClickRecord
	var deleted int64
	for _, rec := range s.records {
		if rec.OwnerID == ownerID {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return deleted, nil
}

func (s *MemoryClickStore) TopProducts(ctx context.Context, limit int) ([]models.ProductClickCount, error) {
	if limit <= 0 {
		limit = DefaultClickLimit
	}

	s.mu.RLock()
	counts := map[string]int64{}
	for _, rec := range s.records {
		counts[rec.ProductID]++
	}
	s.mu.RUnlock()

	results := make([]models.ProductClickCount, 0, len(counts))
	for id, count := range counts {
		results = append(results, models.ProductClickCount{ProductID: id, Count: count})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].ProductID < results[j].ProductID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryClickStore) All(ctx context.Context, limit int) ([]models.ClickExport, error) {
	if limit <= 0 {
		limit = DefaultClickExportLimit
	}

	s.mu.RLock()
	sorted := make([]models.ClickRecord, len(s.records))
	copy(sorted, s.records)
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].OccurredAt.After(sorted[j].OccurredAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	results := make([]models.ClickExport, 0, len(sorted))
	for _, rec := range sorted {
		results = append(results, models.ClickExport{
			ProductID:   rec.ProductID,
			ProductName: rec.ProductName,
			OccurredAt:  rec.OccurredAt,
		})
	}
	return results, nil
}

// MemoryQueryStore is a mutex-guarded QueryStore.
type MemoryQueryStore struct {
	mu      sync.RWMutex
	records []models.SearchQueryRecord
}

// NewMemoryQueryStore creates an empty in-memory query store.
func NewMemoryQueryStore() *MemoryQueryStore {
	return &MemoryQueryStore{}
}

func (s *MemoryQueryStore) Append(ctx context.Context, rec models.SearchQueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryQueryStore) All(ctx context.Context, limit int) ([]models.SearchQueryRecord, error) {
	if limit <= 0 {
		limit = DefaultQueryExportLimit
	}

	s.mu.RLock()
	sorted := make([]models.SearchQueryRecord, len(s.records))
	copy(sorted, s.records)
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].OccurredAt.After(sorted[j].OccurredAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}
