package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-mongo-todo/internal/services"
)

// AuthMiddleware validates the x-auth header and attaches the resolved
// user plus the presented token to the context. Rejection is uniform: a
// missing header, a forged token and a revoked token all look the same
// to the caller.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("x-auth")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"errormessage": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("token", tokenString)
		c.Next()
	}
}

// RequestID tags every request with an id for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
