// api/middleware/reporting.go
package middleware

import (
	"log"
	"net/http"

	"shoplens/api/utils"

	"github.com/gin-gonic/gin"
)

// ReportingAuth guards the analytics endpoints: callers present either the
// configured reporting API key or a valid JWT. An empty configured key
// disables key access entirely rather than matching an empty header.
func ReportingAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey != "" && c.GetHeader("X-API-KEY") == apiKey {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No credentials provided"})
			return
		}
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			log.Printf("ReportingAuth: invalid JWT token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}
