// api/store/query_store.go
package store

import (
	"context"
	"fmt"
	"log"

	"shoplens/api/database"
	"shoplens/api/models"
)

// DefaultQueryExportLimit applies when a caller passes limit <= 0.
const DefaultQueryExportLimit = 1000

// QueryStore persists the anonymized search-query stream. Append-only: rows
// carry no owner and are never touched by session expiry.
type QueryStore interface {
	Append(ctx context.Context, rec models.SearchQueryRecord) error
	All(ctx context.Context, limit int) ([]models.SearchQueryRecord, error)
}

// ClickHouseQueryStore backs QueryStore with the search_queries table:
//
//	CREATE TABLE search_queries (
//	    text        String,
//	    occurred_at DateTime64(3, 'UTC')
//	) ENGINE = MergeTree()
//	ORDER BY occurred_at;
type ClickHouseQueryStore struct {
	DB *database.ClickHouseClient
}

// NewClickHouseQueryStore creates a new ClickHouseQueryStore instance.
func NewClickHouseQueryStore(chClient *database.ClickHouseClient) *ClickHouseQueryStore {
	return &ClickHouseQueryStore{DB: chClient}
}

func (s *ClickHouseQueryStore) Append(ctx context.Context, rec models.SearchQueryRecord) error {
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO search_queries (text, occurred_at) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare query insert: %w", err)
	}

	if err := batch.Append(rec.Text, rec.OccurredAt); err != nil {
		return fmt.Errorf("failed to append query record to batch: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send query batch: %w", err)
	}
	return nil
}

func (s *ClickHouseQueryStore) All(ctx context.Context, limit int) ([]models.SearchQueryRecord, error) {
	if limit <= 0 {
		limit = DefaultQueryExportLimit
	}

	query := `
		SELECT text, occurred_at
		FROM search_queries
		ORDER BY occurred_at DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query search export: %w", err)
	}
	defer rows.Close()

	var results []models.SearchQueryRecord
	for rows.Next() {
		var rec models.SearchQueryRecord
		if err := rows.Scan(&rec.Text, &rec.OccurredAt); err != nil {
			log.Printf("Error scanning row for search export: %v", err)
			continue
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for search export: %w", err)
	}
	return results, nil
}
