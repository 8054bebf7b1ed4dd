package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/internal/service/game"
)

const SessionKey = "game_session"

// GameAuthMiddleware checks the bearer game token against the :id route parameter
// and stores the session under SessionKey
func GameAuthMiddleware(svc *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing game token"})
			return
		}

		session, err := svc.Authorize(c.Request.Context(), token)
		if errors.Is(err, domain.ErrGameNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid game token"})
			return
		}

		if id := c.Param("id"); id != "" && id != session.GameID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is for another game"})
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}
