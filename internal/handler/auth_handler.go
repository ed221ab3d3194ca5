package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/handler/dto"
	"github.com/arlearn/assessment-api/internal/middleware"
	"github.com/arlearn/assessment-api/internal/service"
)

// AccountService is what AuthHandler needs from the auth service
type AccountService interface {
	Register(ctx context.Context, input service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// AuthHandler serves registration, login and the current user
type AuthHandler struct {
	accounts AccountService
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(accounts AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register creates an account and returns it with a token
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		handleError(c, err, "Register")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Login checks credentials and returns a fresh token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err, "Login")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me returns the user loaded by the auth middleware
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func currentUser(c *gin.Context) (*entity.User, bool) {
	v, exists := c.Get(middleware.ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}
