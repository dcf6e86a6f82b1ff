// api/store/history_store.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"shoplens/api/models"
)

// Read limits applied when a caller passes limit <= 0.
const (
	DefaultHistoryLimit    = 10
	DefaultSuggestionLimit = 5
	statsRecentLimit       = 10
)

// HistoryStore persists owner-scoped search history and serves the
// aggregations computed over it.
type HistoryStore interface {
	Append(ctx context.Context, rec models.SearchHistoryRecord) error
	FindByOwner(ctx context.Context, ownerID string, limit int, newestFirst bool) ([]models.SearchHistoryRecord, error)
	FindByOwnerMatching(ctx context.Context, ownerID, substr string, limit int) ([]models.SearchHistoryRecord, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	DeleteOne(ctx context.Context, id, ownerID string) (bool, error)
	TopTerms(ctx context.Context, limit int) ([]models.TermCount, error)
	DailyCounts(ctx context.Context, since time.Time) ([]models.DailyTrend, error)
	Stats(ctx context.Context) (models.SearchStats, error)
}

// PostgresHistoryStore backs HistoryStore with the search_history table:
//
//	CREATE TABLE search_history (
//	    id             TEXT PRIMARY KEY,
//	    owner_id       TEXT NOT NULL,
//	    query_text     TEXT NOT NULL DEFAULT '',
//	    filters        JSONB NOT NULL DEFAULT '{}',
//	    sort_field     TEXT NOT NULL DEFAULT '',
//	    sort_direction TEXT NOT NULL DEFAULT '',
//	    page           INT NOT NULL DEFAULT 1,
//	    page_size      INT NOT NULL DEFAULT 20,
//	    requested_at   TIMESTAMPTZ NOT NULL,
//	    result_ids     TEXT[] NOT NULL DEFAULT '{}'
//	);
//	CREATE INDEX idx_search_history_owner ON search_history (owner_id, requested_at DESC);
type PostgresHistoryStore struct {
	db *sql.DB
}

// NewPostgresHistoryStore creates a new PostgresHistoryStore instance.
func NewPostgresHistoryStore(db *sql.DB) *PostgresHistoryStore {
	return &PostgresHistoryStore{db: db}
}

func (s *PostgresHistoryStore) Append(ctx context.Context, rec models.SearchHistoryRecord) error {
	filters := rec.Filters
	if filters == nil {
		filters = map[string]string{}
	}
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("failed to encode history filters: %w", err)
	}

	query := `
		INSERT INTO search_history (id, owner_id, query_text, filters, sort_field, sort_direction, page, page_size, requested_at, result_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.ID,
		rec.OwnerID,
		rec.QueryText,
		filtersJSON,
		rec.SortField,
		rec.SortDirection,
		rec.Page,
		rec.PageSize,
		rec.RequestedAt,
		pq.Array(rec.ResultIDs),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	return nil
}

func (s *PostgresHistoryStore) FindByOwner(ctx context.Context, ownerID string, limit int, newestFirst bool) ([]models.SearchHistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	direction := "ASC"
	if newestFirst {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, query_text, filters, sort_field, sort_direction, page, page_size, requested_at, result_ids
		FROM search_history
		WHERE owner_id = $1
		ORDER BY requested_at %s
		LIMIT $2;
	`, direction)

	rows, err := s.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history by owner: %w", err)
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

func (s *PostgresHistoryStore) FindByOwnerMatching(ctx context.Context, ownerID, substr string, limit int) ([]models.SearchHistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	query := `
		SELECT id, owner_id, query_text, filters, sort_field, sort_direction, page, page_size, requested_at, result_ids
		FROM search_history
		WHERE owner_id = $1 AND query_text ILIKE '%' || $2 || '%'
		ORDER BY requested_at DESC
		LIMIT $3;
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID, substr, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matching history: %w", err)
	}
	defer rows.Close()

	return scanHistoryRows(rows)
}

func (s *PostgresHistoryStore) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_history WHERE owner_id = $1;`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete history by owner: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted history rows: %w", err)
	}
	return count, nil
}

// DeleteOne removes a record only when it belongs to ownerID. A miss on
// either id or owner reports false with no error.
func (s *PostgresHistoryStore) DeleteOne(ctx context.Context, id, ownerID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_history WHERE id = $1 AND owner_id = $2;`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete history record: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted history rows: %w", err)
	}
	return count > 0, nil
}

func (s *PostgresHistoryStore) TopTerms(ctx context.Context, limit int) ([]models.TermCount, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
		SELECT LOWER(query_text) AS term, COUNT(*) AS searches, MAX(requested_at) AS last_searched
		FROM search_history
		WHERE query_text <> '' AND LOWER(query_text) <> $1
		GROUP BY LOWER(query_text)
		ORDER BY searches DESC, term ASC
		LIMIT $2;
	`
	rows, err := s.db.QueryContext(ctx, query, models.CategoryBrowsePlaceholder, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top search terms: %w", err)
	}
	defer rows.Close()

	var results []models.TermCount
	for rows.Next() {
		var tc models.TermCount
		if err := rows.Scan(&tc.Term, &tc.Count, &tc.LastSearched); err != nil {
			log.Printf("Error scanning row for top search terms: %v", err)
			continue
		}
		results = append(results, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for top search terms: %w", err)
	}
	return results, nil
}

func (s *PostgresHistoryStore) DailyCounts(ctx context.Context, since time.Time) ([]models.DailyTrend, error) {
	query := `
		SELECT (requested_at AT TIME ZONE 'UTC')::date AS day,
		       COUNT(*) AS searches,
		       COUNT(DISTINCT owner_id) AS owners
		FROM search_history
		WHERE requested_at >= $1
		GROUP BY day
		ORDER BY day ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily search counts: %w", err)
	}
	defer rows.Close()

	var results []models.DailyTrend
	for rows.Next() {
		var day time.Time
		var trend models.DailyTrend
		if err := rows.Scan(&day, &trend.SearchCount, &trend.DistinctOwnerCount); err != nil {
			log.Printf("Error scanning row for daily search counts: %v", err)
			continue
		}
		trend.Date = day.Format("2006-01-02")
		results = append(results, trend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for daily search counts: %w", err)
	}
	return results, nil
}

// Stats reads every facet inside one repeatable-read read-only transaction so
// the counts and the recent list describe the same snapshot.
func (s *PostgresHistoryStore) Stats(ctx context.Context) (models.SearchStats, error) {
	stats := models.SearchStats{
		ByCategoryFilter:  map[string]int64{},
		ByConditionFilter: map[string]int64{},
		RecentSearches:    []models.RecentSearch{},
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return stats, fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_history;`).Scan(&stats.TotalSearches); err != nil {
		return stats, fmt.Errorf("failed to count searches: %w", err)
	}

	if err := scanFilterCounts(ctx, tx, "category", stats.ByCategoryFilter); err != nil {
		return stats, err
	}
	if err := scanFilterCounts(ctx, tx, "condition", stats.ByConditionFilter); err != nil {
		return stats, err
	}

	recentQuery := `
		SELECT query_text, requested_at, COALESCE(ARRAY_LENGTH(result_ids, 1), 0)
		FROM search_history
		ORDER BY requested_at DESC
		LIMIT $1;
	`
	rows, err := tx.QueryContext(ctx, recentQuery, statsRecentLimit)
	if err != nil {
		return stats, fmt.Errorf("failed to query recent searches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rs models.RecentSearch
		if err := rows.Scan(&rs.QueryText, &rs.RequestedAt, &rs.ResultCount); err != nil {
			log.Printf("Error scanning row for recent searches: %v", err)
			continue
		}
		stats.RecentSearches = append(stats.RecentSearches, rs)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("error iterating rows for recent searches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("failed to commit stats transaction: %w", err)
	}
	return stats, nil
}

// scanFilterCounts groups history rows by one filter key (category or
// condition), skipping rows where the filter was not set.
func scanFilterCounts(ctx context.Context, tx *sql.Tx, key string, into map[string]int64) error {
	query := `
		SELECT filters->>$1 AS value, COUNT(*)
		FROM search_history
		WHERE COALESCE(filters->>$1, '') <> ''
		GROUP BY value;
	`
	rows, err := tx.QueryContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to query %s filter counts: %w", key, err)
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		var count int64
		if err := rows.Scan(&value, &count); err != nil {
			log.Printf("Error scanning row for %s filter counts: %v", key, err)
			continue
		}
		into[value] = count
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows for %s filter counts: %w", key, err)
	}
	return nil
}

func scanHistoryRows(rows *sql.Rows) ([]models.SearchHistoryRecord, error) {
	var records []models.SearchHistoryRecord
	for rows.Next() {
		var rec models.SearchHistoryRecord
		var filtersJSON []byte
		var resultIDs pq.StringArray
		if err := rows.Scan(
			&rec.ID,
			&rec.OwnerID,
			&rec.QueryText,
			&filtersJSON,
			&rec.SortField,
			&rec.SortDirection,
			&rec.Page,
			&rec.PageSize,
			&rec.RequestedAt,
			&resultIDs,
		); err != nil {
			log.Printf("Error scanning history record: %v", err)
			continue
		}
		if len(filtersJSON) > 0 {
			if err := json.Unmarshal(filtersJSON, &rec.Filters); err != nil {
				log.Printf("Error decoding history filters: %v", err)
			}
		}
		rec.ResultIDs = resultIDs
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return records, nil
}
