package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/foodbridge/donation-app/utils"
)

// WebSocketAuthMiddleware authenticates the live feed; browsers cannot
// set headers on websocket upgrades, so the token rides on the query
// string.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("userName", claims.Name)
		c.Set("organization", claims.Organization)

		c.Next()
	}
}
