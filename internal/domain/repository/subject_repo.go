package repository

import (
	"context"

	"github.com/arlearn/assessment-api/internal/domain/entity"
)

// SubjectRepository defines access to subjects.
type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	GetByID(ctx context.Context, id string) (*entity.Subject, error)
	List(ctx context.Context, limit int) ([]entity.Subject, error)
	Count(ctx context.Context) (int64, error)
}

// ModelRepository defines access to 3D models.
type ModelRepository interface {
	Create(ctx context.Context, model *entity.Model3D) error
	GetByID(ctx context.Context, id string) (*entity.Model3D, error)
	List(ctx context.Context, subjectID string, limit int) ([]entity.Model3D, error)
}
