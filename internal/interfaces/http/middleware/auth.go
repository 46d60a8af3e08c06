// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/cart-service/internal/config"
	"github.com/your-org/cart-service/internal/pkg/auth"
)

// SchedulerAuth requires a bearer token carrying the scheduler role
func SchedulerAuth(cfg *config.Config) gin.HandlerFunc {
	return RoleAuth(cfg, auth.RoleScheduler)
}

// RoleAuth creates JWT authentication middleware for service tokens with the given role
func RoleAuth(cfg *config.Config, role string) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header required",
			})
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid authorization header format",
			})
			return
		}

		claims, err := jwtManager.ValidateRoleToken(tokenString, role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set("token_claims", claims)
		c.Set("caller", claims.Subject)

		c.Next()
	}
}
