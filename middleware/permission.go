package middleware

import (
	"net/http"

	"travel-authorization-api/services"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on one named permission of the acting
// role. Transition routes do not use this: the workflow engine resolves
// its own permission from the current and requested status.
func RequirePermission(name services.PermissionName) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, exists := c.Get("roleID")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			c.Abort()
			return
		}

		if !services.HasPermission(roleID.(int), name) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
