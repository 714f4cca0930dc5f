package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/etams/internal/errors"
)

// RequireAdmin allows only administrators through
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			apierrors.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin allows administrators and the employee named by the :id parameter
func RequireSelfOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid employee ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if userID != employeeID && !IsAdmin(c) {
			apierrors.Forbidden(c, "You can only change your own password")
			c.Abort()
			return
		}
		c.Next()
	}
}
