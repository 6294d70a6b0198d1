package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles passes when the authenticated role matches at least one
// of the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	need := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		need[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role, _ := c.MustGet(ContextUserRole).(string)
		if _, ok := need[strings.ToLower(role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
