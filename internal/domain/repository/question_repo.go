package repository

import (
	"context"

	"github.com/arlearn/assessment-api/internal/domain/entity"
)

// QuestionFilter narrows question listings. Empty fields are ignored.
type QuestionFilter struct {
	SubjectID  string
	ModelID    string
	Difficulty string
}

// QuestionRepository defines access to the question catalog.
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id string) (*entity.Question, error)
	List(ctx context.Context, filter QuestionFilter, limit int) ([]entity.Question, error)
}
