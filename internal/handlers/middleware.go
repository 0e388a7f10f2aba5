package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eems-edu/exam-marking-service/internal/models"
	"github.com/eems-edu/exam-marking-service/internal/services"
)

// AuthRequired verifies the bearer token and attaches the decoded identity
// to the request context. A missing, malformed, expired or badly-signed
// token all produce the same 401.
func AuthRequired(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Success: false,
				Message: "Access denied",
			})
			return
		}

		claims, err := auth.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Success: false,
				Message: "Invalid token",
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRoles rejects requests whose authenticated role is not on the
// operation's allow-list.
func RequireRoles(allowed ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		role, ok := value.(models.UserRole)
		if exists && ok {
			for _, a := range allowed {
				if role == a {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Success: false,
			Message: "Forbidden",
		})
	}
}
