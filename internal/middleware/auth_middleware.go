package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
	"github.com/arlearn/assessment-api/pkg/auth"
)

// Gin context keys set by RequireAuth.
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
	ContextUser     = "user"
)

// TokenParser verifies bearer tokens
type TokenParser interface {
	ParseToken(tokenString string) (*auth.JWTCustomClaims, error)
}

// UserLoader reloads the account behind a token
type UserLoader interface {
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}

// AuthMiddleware protects routes with bearer tokens
type AuthMiddleware struct {
	tokens TokenParser
	users  UserLoader
}

// NewAuthMiddleware creates the auth middleware
func NewAuthMiddleware(tokens TokenParser, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// RequireAuth validates the bearer token and reloads the user on every request
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		// Bearer {token}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, err := m.tokens.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, apperrors.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := m.users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
				return
			}
			log.Printf("[AuthMiddleware] failed to load user ID=%s: %v", claims.UserID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextUser, user)
		c.Next()
	}
}

// AdminOnly must run after RequireAuth
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if c.GetString(ContextUserRole) != entity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
