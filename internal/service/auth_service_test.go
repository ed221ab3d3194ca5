package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

func createTestAuthService(t *testing.T) (*AuthService, *MockUserRepo, *MockTokenIssuer) {
	t.Helper()
	userRepo := new(MockUserRepo)
	tokens := new(MockTokenIssuer)
	svc, err := NewAuthService(userRepo, tokens)
	require.NoError(t, err)
	return svc, userRepo, tokens
}

func TestRegister_Success(t *testing.T) {
	// Arrange
	svc, userRepo, tokens := createTestAuthService(t)
	ctx := context.Background()
	userRepo.On("GetByEmail", ctx, "ada@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ada@example.com" && u.Name == "Ada" && u.Role == entity.RoleStudent
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = "u-1"
	}).Return(nil)
	tokens.On("GenerateToken", mock.AnythingOfType("*entity.User")).Return("jwt-token", nil)

	// Act
	res, err := svc.Register(ctx, RegisterInput{Email: " Ada@Example.com ", Name: "Ada", Password: "secret123"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, "u-1", res.User.ID)
	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, userRepo, _ := createTestAuthService(t)
	ctx := context.Background()
	userRepo.On("GetByEmail", ctx, "ada@example.com").Return(&entity.User{ID: "u-1"}, nil)

	_, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Name: "Ada", Password: "secret123"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Email already registered", err.Error())
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_RaceOnUniqueIndex(t *testing.T) {
	svc, userRepo, _ := createTestAuthService(t)
	ctx := context.Background()
	userRepo.On("GetByEmail", ctx, "ada@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.Anything).Return(apperrors.ErrConflict)

	_, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Name: "Ada", Password: "secret123"})

	assert.Equal(t, ErrEmailTaken, err)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"bad email", RegisterInput{Email: "not-an-email", Name: "Ada", Password: "secret123"}},
		{"blank name", RegisterInput{Email: "ada@example.com", Name: "  ", Password: "secret123"}},
		{"short password", RegisterInput{Email: "ada@example.com", Name: "Ada", Password: "abc"}},
		{"unknown role", RegisterInput{Email: "ada@example.com", Name: "Ada", Password: "secret123", Role: "teacher"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _ := createTestAuthService(t)

			_, err := svc.Register(context.Background(), tt.input)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &entity.User{ID: "u-1", Email: "ada@example.com", Password: string(hash), Role: entity.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		svc, userRepo, tokens := createTestAuthService(t)
		ctx := context.Background()
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil)
		tokens.On("GenerateToken", stored).Return("jwt-token", nil)

		res, err := svc.Login(ctx, "ada@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "jwt-token", res.Token)
		assert.Same(t, stored, res.User)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, userRepo, _ := createTestAuthService(t)
		ctx := context.Background()
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil)

		_, err := svc.Login(ctx, "ada@example.com", "nope")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Equal(t, "Invalid credentials", err.Error())
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, userRepo, _ := createTestAuthService(t)
		ctx := context.Background()
		userRepo.On("GetByEmail", ctx, "who@example.com").Return(nil, apperrors.ErrNotFound)

		_, err := svc.Login(ctx, "who@example.com", "secret123")

		assert.Equal(t, ErrInvalidCredentials, err)
	})
}

func TestGetUser(t *testing.T) {
	svc, userRepo, _ := createTestAuthService(t)
	ctx := context.Background()
	userRepo.On("GetByID", ctx, "gone").Return(nil, apperrors.ErrNotFound)
	dbErr := errors.New("db down")
	userRepo.On("GetByID", ctx, "broken").Return(nil, dbErr)

	_, err := svc.GetUser(ctx, "gone")
	assert.Equal(t, ErrUserNotFound, err)

	_, err = svc.GetUser(ctx, "broken")
	assert.ErrorIs(t, err, dbErr)
}
