// api/handlers/analytics_handlers.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"shoplens/api/analytics"
	"shoplens/api/errs"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandlers struct {
	Aggregator *analytics.Aggregator
}

func NewAnalyticsHandlers(aggregator *analytics.Aggregator) *AnalyticsHandlers {
	return &AnalyticsHandlers{Aggregator: aggregator}
}

// Searches exports the anonymized query stream.
func (h *AnalyticsHandlers) Searches(c *gin.Context) {
	limit, ok := parseLimit(c, "limit")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Aggregator.AllSearches(ctx, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve search export")
		return
	}
	c.JSON(http.StatusOK, results)
}

// Clicks exports recent clicks. The payload type carries no owner ids.
func (h *AnalyticsHandlers) Clicks(c *gin.Context) {
	limit, ok := parseLimit(c, "limit")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Aggregator.AllClicks(ctx, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve click export")
		return
	}
	c.JSON(http.StatusOK, results)
}

// TopProducts returns the most clicked products joined with catalog data.
func (h *AnalyticsHandlers) TopProducts(c *gin.Context) {
	limit, ok := parseLimit(c, "limit")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Aggregator.TopProducts(ctx, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve top products")
		return
	}
	c.JSON(http.StatusOK, results)
}

// TopTerms returns the most searched terms.
func (h *AnalyticsHandlers) TopTerms(c *gin.Context) {
	limit, ok := parseLimit(c, "limit")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Aggregator.TopTerms(ctx, limit)
	if err != nil {
		respondError(c, err, "Failed to retrieve top search terms")
		return
	}
	c.JSON(http.StatusOK, results)
}

// Trends returns per-day search activity for the last N days.
func (h *AnalyticsHandlers) Trends(c *gin.Context) {
	days, ok := parseLimit(c, "days")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Aggregator.Trends(ctx, days)
	if err != nil {
		respondError(c, err, "Failed to retrieve search trends")
		return
	}
	c.JSON(http.StatusOK, results)
}

// Stats returns the multi-facet statistics snapshot.
func (h *AnalyticsHandlers) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Aggregator.Stats(ctx)
	if err != nil {
		respondError(c, err, "Failed to retrieve search statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// parseLimit reads an optional integer query parameter. Absent means 0, which
// the aggregator replaces with its default; range checks live there too.
func parseLimit(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: must be an integer", name)})
		return 0, false
	}
	return n, true
}

// respondError maps a taxonomy error onto its HTTP status. Validation and
// not-found messages are safe to echo back; everything else answers with the
// caller's public message and keeps the detail in the log.
func respondError(c *gin.Context, err error, publicMsg string) {
	status := errs.Status(err)
	switch {
	case errs.IsValidation(err) || errors.Is(err, errs.ErrNotFoundOrForbidden):
		c.JSON(status, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrCatalogUnavailable):
		log.Printf("%s: %v", publicMsg, err)
		c.JSON(status, gin.H{"error": "Catalog is currently unavailable"})
	default:
		log.Printf("%s: %v", publicMsg, err)
		c.JSON(status, gin.H{"error": publicMsg})
	}
}
