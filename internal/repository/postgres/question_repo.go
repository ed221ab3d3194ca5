package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/domain/repository"
)

// QuestionRepo implements repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create inserts a question
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// GetByID returns a question by ID
func (r *QuestionRepo) GetByID(ctx context.Context, id string) (*entity.Question, error) {
	var question entity.Question
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &question, nil
}

// List returns questions matching filter, oldest first
func (r *QuestionRepo) List(ctx context.Context, filter repository.QuestionFilter, limit int) ([]entity.Question, error) {
	query := r.db.WithContext(ctx).Model(&entity.Question{})
	if filter.SubjectID != "" {
		query = query.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.ModelID != "" {
		query = query.Where("model_id = ?", filter.ModelID)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var questions []entity.Question
	err := query.Order("created_at ASC, id ASC").Limit(limit).Find(&questions).Error
	return questions, err
}
