// Package catalog fetches the product collection this service filters and
// joins against. Products are always fetched fresh; nothing here caches.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shoplens/api/errs"
	"shoplens/api/models"
)

const fetchTimeout = 10 * time.Second

// Source supplies the full product collection.
type Source interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// HTTPSource fetches products from the external catalog API. Safe for
// concurrent use.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource builds a source for the catalog API at baseURL, which must
// serve GET {baseURL}/products with a {"products": [...]} body.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

type productsResponse struct {
	Products []models.Product `json:"products"`
}

// FetchProducts retrieves the current product collection. Every failure mode
// (transport, bad status, undecodable body) reports ErrCatalogUnavailable so
// callers answer with a single well-known error instead of stale data.
func (s *HTTPSource) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building catalog request: %v", errs.ErrCatalogUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog returned status %d", errs.ErrCatalogUnavailable, resp.StatusCode)
	}

	var body productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding catalog response: %v", errs.ErrCatalogUnavailable, err)
	}

	return body.Products, nil
}
