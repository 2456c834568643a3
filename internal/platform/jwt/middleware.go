package jwtmw

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys under which the verified identity is stored.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextName   = "name"
)

// Identity is the verified caller exposed to downstream handlers.
// It never carries the password hash.
type Identity struct {
	UserID uint
	Email  string
	Name   string
}

// IdentityResolver loads the identity for a verified token subject.
// The boolean is false when the referenced user no longer exists.
type IdentityResolver func(ctx context.Context, userID uint) (Identity, bool, error)

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only. The resolver confirms
// that the token subject still exists and supplies the identity fields.
func AuthRequired(resolve IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Validation error or invalid/expired token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// 4. Extract claims (payload)
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// 5. Confirm the user behind the token still exists
		identity, found, err := resolve(c.Request.Context(), uint(sub))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !found {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextEmail, identity.Email)
		c.Set(ContextName, identity.Name)

		// 6. Pass control to the next handler
		c.Next()
	}
}

// IdentityFromContext returns the identity attached by AuthRequired.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return Identity{}, false
	}
	userID, ok := id.(uint)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		UserID: userID,
		Email:  c.GetString(ContextEmail),
		Name:   c.GetString(ContextName),
	}, true
}
