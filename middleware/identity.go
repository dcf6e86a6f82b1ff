// api/middleware/identity.go
package middleware

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"shoplens/api/session"
	"shoplens/api/utils"

	"github.com/gin-gonic/gin"
)

// HeaderSessionID carries the shopper's session id in both directions.
const HeaderSessionID = "X-Session-Id"

// Context keys set by Identity for downstream handlers.
const (
	CtxOwnerID   = "owner_id"
	CtxSessionID = "session_id"
	CtxUserID    = "user_id"
)

// Identity resolves who is asking. A presented JWT must be valid (401
// otherwise) and yields a stable user_<id> owner with no session involved.
// Without a token the request gets an anonymous session: the X-Session-Id
// header is refreshed if it names a live session and replaced if absent,
// unknown, or expired. The response always echoes the session id so clients
// can persist it.
func Identity(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			claims, err := utils.ValidateJWT(tokenString)
			if err != nil {
				log.Printf("Identity: invalid JWT token: %v", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
				return
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxOwnerID, "user_"+strconv.Itoa(claims.UserID))
			c.Next()
			return
		}

		sessionID, isNew := registry.Resolve(c.GetHeader(HeaderSessionID))
		if isNew {
			log.Printf("Identity: started session %s...", sessionID[:8])
		}
		c.Set(CtxSessionID, sessionID)
		c.Set(CtxOwnerID, session.DeriveOwnerID(sessionID))
		c.Header(HeaderSessionID, sessionID)
		c.Next()
	}
}

// bearerToken extracts a JWT from the jwt_token cookie or the Authorization
// header, cookie first. ok is false when the request carries neither.
func bearerToken(c *gin.Context) (string, bool) {
	if tokenString, err := c.Cookie("jwt_token"); err == nil && tokenString != "" {
		return tokenString, true
	}
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		return "", false
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	return tokenString, tokenString != ""
}

// OwnerID returns the owner id Identity resolved for this request.
func OwnerID(c *gin.Context) string {
	return c.GetString(CtxOwnerID)
}
