package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user. A duplicate email yields apperrors.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrConflict, user.Email)
		}
		return err
	}
	return nil
}

// GetByID returns a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

// GetByEmail returns a user by email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

// GetByIDs loads every existing user among ids in one query.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	result := make(map[string]*entity.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []entity.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].ID] = &users[i]
	}
	return result, nil
}
