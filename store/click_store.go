// api/store/click_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"shoplens/api/models"
)

// Read limits applied when a caller passes limit <= 0.
const (
	DefaultClickLimit       = 50
	DefaultClickExportLimit = 100
)

// ClickStore persists product clicks and serves the click aggregations.
type ClickStore interface {
	Append(ctx context.Context, rec models.ClickRecord) error
	FindByOwner(ctx context.Context, ownerID string, limit int, newestFirst bool) ([]models.ClickRecord, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	TopProducts(ctx context.Context, limit int) ([]models.ProductClickCount, error)
	All(ctx context.Context, limit int) ([]models.ClickExport, error)
}

// PostgresClickStore backs ClickStore with the clicks table:
//
//	CREATE TABLE clicks (
//	    id           TEXT PRIMARY KEY,
//	    product_id   TEXT NOT NULL,
//	    product_name TEXT NOT NULL,
//	    occurred_at  TIMESTAMPTZ NOT NULL,
//	    owner_id     TEXT
//	);
//	CREATE INDEX idx_clicks_owner ON clicks (owner_id, occurred_at DESC);
type PostgresClickStore struct {
	db *sql.DB
}

// NewPostgresClickStore creates a new PostgresClickStore instance.
func NewPostgresClickStore(db *sql.DB) *PostgresClickStore {
	return &PostgresClickStore{db: db}
}

func (s *PostgresClickStore) Append(ctx context.Context, rec models.ClickRecord) error {
	owner := sql.NullString{String: rec.OwnerID, Valid: rec.OwnerID != ""}
	query := `
		INSERT INTO clicks (id, product_id, product_name, occurred_at, owner_id)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := s.db.ExecContext(ctx, query, rec.ID, rec.ProductID, rec.ProductName, rec.OccurredAt, owner)
	if err != nil {
		return fmt.Errorf("failed to insert click record: %w", err)
	}
	return nil
}

func (s *PostgresClickStore) FindByOwner(ctx context.Context, ownerID string, limit int, newestFirst bool) ([]models.ClickRecord, error) {
	if limit <= 0 {
		limit = DefaultClickLimit
	}
	direction := "ASC"
	if newestFirst {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, product_id, product_name, occurred_at, owner_id
		FROM clicks
		WHERE owner_id = $1
		ORDER BY occurred_at %s
		LIMIT $2;
	`, direction)

	rows, err := s.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks by owner: %w", err)
	}
	defer rows.Close()

	var records []models.ClickRecord
	for rows.Next() {
		var rec models.ClickRecord
		var owner sql.NullString
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.ProductName, &rec.OccurredAt, &owner); err != nil {
			log.Printf("Error scanning click record: %v", err)
			continue
		}
		rec.OwnerID = owner.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating click rows: %w", err)
	}
	return records, nil
}

func (s *PostgresClickStore) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clicks WHERE owner_id = $1;`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete clicks by owner: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted click rows: %w", err)
	}
	return count, nil
}

func (s *PostgresClickStore) TopProducts(ctx context.Context, limit int) ([]models.ProductClickCount, error) {
	if limit <= 0 {
		limit = DefaultClickLimit
	}

	query := `
		SELECT product_id, COUNT(*) AS clicks
		FROM clicks
		GROUP BY product_id
		ORDER BY clicks DESC, product_id ASC
		LIMIT $1;
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top clicked products: %w", err)
	}
	defer rows.Close()

	var results []models.ProductClickCount
	for rows.Next() {
		var pc models.ProductClickCount
		if err := rows.Scan(&pc.ProductID, &pc.Count); err != nil {
			log.Printf("Error scanning row for top clicked products: %v", err)
			continue
		}
		results = append(results, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for top clicked products: %w", err)
	}
	return results, nil
}

// All exports recent clicks for the reporting collaborator. The SELECT list
// deliberately omits owner_id; ClickExport cannot carry it.
func (s *PostgresClickStore) All(ctx context.Context, limit int) ([]models.ClickExport, error) {
	if limit <= 0 {
		limit = DefaultClickExportLimit
	}

	query := `
		SELECT product_id, product_name, occurred_at
		FROM clicks
		ORDER BY occurred_at DESC
		LIMIT $1;
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query click export: %w", err)
	}
	defer rows.Close()

	var results []models.ClickExport
	for rows.Next() {
		var ce models.ClickExport
		if err := rows.Scan(&ce.ProductID, &ce.ProductName, &ce.OccurredAt); err != nil {
			log.Printf("Error scanning row for click export: %v", err)
			continue
		}
		results = append(results, ce)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for click export: %w", err)
	}
	return results, nil
}
