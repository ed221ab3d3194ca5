package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/domain/repository"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

const minPasswordLength = 6

// TokenIssuer issues access tokens for users
type TokenIssuer interface {
	GenerateToken(user *entity.User) (string, error)
}

// RegisterInput holds the data for a new account
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// AuthResult is a user together with a freshly issued token
type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService handles registration and login
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

// NewAuthService creates the auth service
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if tokens == nil {
		return nil, fmt.Errorf("TokenIssuer is required for AuthService")
	}
	return &AuthService{userRepo: userRepo, tokens: tokens}, nil
}

// Register creates an account and logs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.New(apperrors.ErrValidation, "Invalid email address")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "Name is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.New(apperrors.ErrValidation, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	role := input.Role
	if role == "" {
		role = entity.RoleStudent
	}
	if !entity.IsValidRole(role) {
		return nil, apperrors.New(apperrors.ErrValidation, "Role must be student or admin")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &entity.User{Email: email, Name: name, Password: input.Password, Role: role}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("[AuthService] registered user ID=%s role=%s", user.ID, user.Role)

	return s.issue(user)
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// GetUser returns the account behind an authenticated request
func (s *AuthService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *entity.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
