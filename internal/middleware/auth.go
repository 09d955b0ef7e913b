package middleware

import (
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

var (
	jwtSecretOnce sync.Once
	jwtSecretVal  []byte
)

func jwtSecret() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			panic("JWT_SECRET environment variable is not set")
		}
		jwtSecretVal = []byte(secret)
	})
	return jwtSecretVal
}

// Claims is the JWT payload. Subject carries the user login; Role gates the
// administrative route groups.
type Claims struct {
	Login string          `json:"login"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the Bearer token and exposes the caller's login
// and role to downstream handlers via the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims := &Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			return jwtSecret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("login", claims.Login)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated caller holds role.
// It must run after AuthMiddleware.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, _ := c.Get("role"); got != string(role) {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Insufficient permissions",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetLogin returns the authenticated caller's login from the gin context.
func GetLogin(c *gin.Context) (string, bool) {
	login, exists := c.Get("login")
	if !exists {
		return "", false
	}
	return login.(string), true
}

// GetRole returns the authenticated caller's role from the gin context.
func GetRole(c *gin.Context) (models.UserRole, bool) {
	role, exists := c.Get("role")
	if !exists {
		return "", false
	}
	return models.UserRole(role.(string)), true
}
