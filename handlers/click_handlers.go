// api/handlers/click_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"shoplens/api/middleware"
	"shoplens/api/models"
	"shoplens/api/store"
	"shoplens/api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxClickLimit = 100

type ClickHandlers struct {
	Clicks store.ClickStore
}

func NewClickHandlers(clicks store.ClickStore) *ClickHandlers {
	return &ClickHandlers{Clicks: clicks}
}

// Track records a product click for the resolved owner. Unlike the search
// side effects this write fails loud: the client asked for exactly this.
func (h *ClickHandlers) Track(c *gin.Context) {
	var req models.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding click request JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId and productName are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	rec := models.ClickRecord{
		ID:          uuid.New().String(),
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		OccurredAt:  time.Now().UTC(),
		OwnerID:     middleware.OwnerID(c),
	}
	if err := h.Clicks.Append(ctx, rec); err != nil {
		log.Printf("Error inserting click record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record click"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// Recent returns the owner's latest clicks, newest first.
func (h *ClickHandlers) Recent(c *gin.Context) {
	limit, err := utils.ParseBoundedInt(c.Query("limit"), store.DefaultClickLimit, 1, maxClickLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	records, err := h.Clicks.FindByOwner(ctx, middleware.OwnerID(c), limit, true)
	if err != nil {
		log.Printf("Error listing clicks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clicks"})
		return
	}
	if records == nil {
		records = []models.ClickRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"clicks": records})
}
