package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole creates middleware that requires any of the given roles. The
// application services re-check the role on every entry point; this
// middleware only short-circuits obviously unauthorized requests, so it
// reports the same code the services would.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held, exists := c.Get(JWTRolesKey)
		if !exists {
			abortUnauthorized(c, "Authentication required")
			return
		}
		have, _ := held.([]string)
		for _, want := range roles {
			for _, role := range have {
				if role == want {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_ROLE",
				"message": "You do not have permission to perform this action",
			},
		})
	}
}
