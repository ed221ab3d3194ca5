package repository

import (
	"context"

	"github.com/arlearn/assessment-api/internal/domain/entity"
)

// UserRepository defines access to user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByIDs returns the users that exist among ids, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
}
