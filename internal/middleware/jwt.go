package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/evimeria/catalog-service/internal/auth"
)

// Identify parses an optional Bearer token and attaches the resulting Viewer
// to the request context. Requests without a token proceed anonymously; only
// a present-but-invalid token is rejected.
func Identify(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Request = c.Request.WithContext(auth.WithViewer(c.Request.Context(), auth.Anonymous()))
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		viewer := auth.Viewer{}
		if sub, ok := claims["sub"].(string); ok {
			viewer.UserID = sub
		}
		if role, ok := claims["role"].(string); ok && role == "admin" {
			viewer.IsAdmin = true
		}

		c.Request = c.Request.WithContext(auth.WithViewer(c.Request.Context(), viewer))
		c.Next()
	}
}
