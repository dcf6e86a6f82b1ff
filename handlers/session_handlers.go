// api/handlers/session_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"shoplens/api/middleware"
	"shoplens/api/models"
	"shoplens/api/session"

	"github.com/gin-gonic/gin"
)

type SessionHandlers struct {
	Coordinator *session.Coordinator
}

func NewSessionHandlers(coordinator *session.Coordinator) *SessionHandlers {
	return &SessionHandlers{Coordinator: coordinator}
}

// Close runs the expiry cascade immediately for one session. The route sits
// outside the identity middleware so a close request can never mint a fresh
// session and close that instead; the id comes from the body when given,
// else from the raw X-Session-Id header.
func (h *SessionHandlers) Close(c *gin.Context) {
	var req models.CloseSessionRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = c.GetHeader(middleware.HeaderSessionID)
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id required (body sessionId or X-Session-Id header)"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	result, err := h.Coordinator.CloseSession(ctx, sessionID)
	if err != nil {
		log.Printf("Error closing session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close session"})
		return
	}

	c.JSON(http.StatusOK, result)
}
