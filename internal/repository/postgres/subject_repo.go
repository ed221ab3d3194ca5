package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/arlearn/assessment-api/internal/domain/entity"
)

// SubjectRepo implements repository.SubjectRepository
type SubjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo creates a new subject repository
func NewSubjectRepo(db *gorm.DB) *SubjectRepo {
	return &SubjectRepo{db: db}
}

func (r *SubjectRepo) Create(ctx context.Context, subject *entity.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *SubjectRepo) GetByID(ctx context.Context, id string) (*entity.Subject, error) {
	var subject entity.Subject
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&subject).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &subject, nil
}

func (r *SubjectRepo) List(ctx context.Context, limit int) ([]entity.Subject, error) {
	var subjects []entity.Subject
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Limit(limit).Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Subject{}).Count(&count).Error
	return count, err
}

// ModelRepo implements repository.ModelRepository
type ModelRepo struct {
	db *gorm.DB
}

// NewModelRepo creates a new 3D model repository
func NewModelRepo(db *gorm.DB) *ModelRepo {
	return &ModelRepo{db: db}
}

func (r *ModelRepo) Create(ctx context.Context, model *entity.Model3D) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *ModelRepo) GetByID(ctx context.Context, id string) (*entity.Model3D, error) {
	var model entity.Model3D
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &model, nil
}

// List returns models, optionally restricted to one subject
func (r *ModelRepo) List(ctx context.Context, subjectID string, limit int) ([]entity.Model3D, error) {
	query := r.db.WithContext(ctx).Model(&entity.Model3D{})
	if subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	var models []entity.Model3D
	err := query.Order("created_at ASC, id ASC").Limit(limit).Find(&models).Error
	return models, err
}
