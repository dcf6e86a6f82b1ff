// api/handlers/history_handlers.go
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
)

const maxHistoryLimit = 100

type HistoryHandlers struct {
	History store.HistoryStore
}

func NewHistoryHandlers(history store.HistoryStore) *HistoryHandlers {
	return &HistoryHandlers{History: history}
}

// List returns the owner's search history, newest first.
func (h *HistoryHandlers) List(c *gin.Context) {
	limit, err := utils.ParseBoundedInt(c.Query("limit"), store.DefaultHistoryLimit, 1, maxHistoryLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	records, err := h.History.FindByOwner(ctx, middleware.OwnerID(c), limit, true)
	if err != nil {
		log.Printf("Error listing search history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve search history"})
		return
	}
	if records == nil {
		records = []models.SearchHistoryRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"history": records})
}

// DeleteOne removes a single history record. A record that does not exist
// and a record owned by someone else answer identically: 404.
func (h *HistoryHandlers) DeleteOne(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	deleted, err := h.History.DeleteOne(ctx, id, middleware.OwnerID(c))
	if err != nil {
		log.Printf("Error deleting history record %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete history record"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "history record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Clear removes every history record the owner has.
func (h *HistoryHandlers) Clear(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	count, err := h.History.DeleteByOwner(ctx, middleware.OwnerID(c))
	if err != nil {
		log.Printf("Error clearing search history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear search history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": count})
}
