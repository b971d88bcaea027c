package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evimeria/catalog-service/internal/auth"
)

// RequireAdmin guards the administrative write surface.
func RequireAdmin(c *gin.Context) {
	if !auth.FromContext(c.Request.Context()).IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		c.Abort()
		return
	}
	c.Next()
}
