package controllers

import (
	"errors"
	"net/http"

	"travel-authorization-api/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Validation and permission failures are expected caller-recoverable
// conditions; anything unclassified is a 500.
func respondError(c *gin.Context, err error) {
	if utils.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	var forbiddenErr *utils.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":      forbiddenErr.Message,
			"permission": forbiddenErr.Permission,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// actingSession pulls the authenticated session context set by the auth
// middleware.
func actingSession(c *gin.Context) (userID, roleID, sessionID int) {
	if v, ok := c.Get("userID"); ok {
		userID, _ = v.(int)
	}
	if v, ok := c.Get("roleID"); ok {
		roleID, _ = v.(int)
	}
	if v, ok := c.Get("sessionID"); ok {
		sessionID, _ = v.(int)
	}
	return userID, roleID, sessionID
}
