// api/handlers/search_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"shoplens/api/catalog"
	"shoplens/api/errs"
	"shoplens/api/middleware"
	"shoplens/api/models"
	"shoplens/api/search"
	"shoplens/api/store"
	"shoplens/api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxPageNumber bounds the page query parameter; pages past the data just
// come back empty.
const maxPageNumber = 100000

type SearchHandlers struct {
	Catalog catalog.Source
	History store.HistoryStore
	Queries store.QueryStore
}

func NewSearchHandlers(source catalog.Source, history store.HistoryStore, queries store.QueryStore) *SearchHandlers {
	return &SearchHandlers{
		Catalog: source,
		History: history,
		Queries: queries,
	}
}

// Search fetches the catalog fresh, runs the filter pipeline and answers with
// one page. Recording the search is a side effect that never costs the
// shopper their results.
func (h *SearchHandlers) Search(c *gin.Context) {
	opts, err := parseFilterOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	products, err := h.Catalog.FetchProducts(ctx)
	if err != nil {
		log.Printf("Error fetching catalog for search: %v", err)
		c.JSON(errs.Status(err), gin.H{"error": "Catalog is currently unavailable"})
		return
	}

	result := search.Apply(products, opts)
	h.recordSearch(ctx, middleware.OwnerID(c), opts, result)

	c.JSON(http.StatusOK, result)
}

// recordSearch writes the analytics query record and, for owned searches
// with a non-empty result page, the history record. Filter-only searches
// produce no records at all. Failures follow the degrade policy: logged,
// never surfaced.
func (h *SearchHandlers) recordSearch(ctx context.Context, ownerID string, opts models.FilterOptions, result models.SearchResult) {
	text := strings.TrimSpace(opts.Text)
	if !search.ShouldRecordQuery(text) {
		return
	}
	now := time.Now().UTC()

	logStoreFailure("query.append", h.Queries.Append(ctx, models.SearchQueryRecord{
		Text:       text,
		OccurredAt: now,
	}))

	if ownerID == "" || len(result.Items) == 0 {
		return
	}
	resultIDs := make([]string, 0, len(result.Items))
	for _, p := range result.Items {
		resultIDs = append(resultIDs, p.ID)
	}
	sortField, sortDirection := opts.SortColumns()

	logStoreFailure("history.append", h.History.Append(ctx, models.SearchHistoryRecord{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		QueryText:     text,
		Filters:       opts.FilterMap(),
		SortField:     sortField,
		SortDirection: sortDirection,
		Page:          result.Page,
		PageSize:      result.PageSize,
		RequestedAt:   now,
		ResultIDs:     resultIDs,
	}))
}

// Suggestions serves typeahead entries: the owner's own searches first, then
// catalog titles. History being down only narrows the list; the catalog
// being down fails the request.
func (h *SearchHandlers) Suggestions(c *gin.Context) {
	text := c.Query("text")
	ownerID := middleware.OwnerID(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var history []models.SearchHistoryRecord
	var err error
	if ownerID != "" {
		if strings.TrimSpace(text) != "" {
			history, err = h.History.FindByOwnerMatching(ctx, ownerID, strings.TrimSpace(text), search.SuggestionLimit)
		} else {
			history, err = h.History.FindByOwner(ctx, ownerID, search.SuggestionLimit, true)
		}
		if err != nil {
			logStoreFailure("suggest.history", err)
			history = nil
		}
	}

	products, err := h.Catalog.FetchProducts(ctx)
	if err != nil {
		log.Printf("Error fetching catalog for suggestions: %v", err)
		c.JSON(errs.Status(err), gin.H{"error": "Catalog is currently unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": search.BuildSuggestions(history, products, text, search.SuggestionLimit),
	})
}

// parseFilterOptions validates the search query parameters into FilterOptions.
func parseFilterOptions(c *gin.Context) (models.FilterOptions, error) {
	var opts models.FilterOptions
	opts.Text = c.Query("text")
	opts.Category = c.Query("category")
	opts.Condition = c.Query("condition")

	if raw := c.Query("priceRange"); raw != "" {
		min, max, err := utils.ParsePriceRange(raw)
		if err != nil {
			return opts, errs.Validation("priceRange", err.Error())
		}
		opts.PriceMin, opts.PriceMax = min, max
	}

	switch sortKey := c.Query("sort"); sortKey {
	case "", models.SortPriceAscending, models.SortPriceDescending:
		opts.Sort = sortKey
	default:
		return opts, errs.Validation("sort", "must be price-ascending or price-descending")
	}

	page, err := utils.ParseBoundedInt(c.Query("page"), 1, 1, maxPageNumber)
	if err != nil {
		return opts, errs.Validation("page", err.Error())
	}
	opts.Page = page

	pageSize, err := utils.ParseBoundedInt(c.Query("pageSize"), search.DefaultPageSize, 1, search.MaxPageSize)
	if err != nil {
		return opts, errs.Validation("pageSize", err.Error())
	}
	opts.PageSize = pageSize

	return opts, nil
}

// logStoreFailure applies the failure policy to a side-effect store write.
func logStoreFailure(operation string, err error) {
	if err == nil {
		return
	}
	if errs.ModeFor(operation) == errs.Degrade {
		log.Printf("WARN: %s failed, continuing without record: %v", operation, err)
		return
	}
	log.Printf("ERROR: %s failed: %v", operation, err)
}
