package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

const tokenIssuer = "assessment-api"

// JWTCustomClaims carries the user identity in the token
type JWTCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 access tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTService creates a JWT service signing with secret
func NewJWTService(secret string, expirationHrs int) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if expirationHrs <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive, got %d hours", expirationHrs)
	}
	return &JWTService{
		secret:     []byte(secret),
		expiration: time.Duration(expirationHrs) * time.Hour,
		now:        time.Now,
	}, nil
}

// GenerateToken issues an access token for user
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	now := s.now()
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] failed to sign token for user ID=%s: %v", user.ID, err)
		return "", err
	}
	return tokenString, nil
}

// ParseToken verifies tokenString. Expired tokens yield apperrors.ErrExpiredToken,
// every other failure apperrors.ErrUnauthorized.
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, apperrors.ErrExpiredToken
		}
		log.Printf("[JWT] token rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: token carries no user", apperrors.ErrUnauthorized)
	}
	return claims, nil
}
