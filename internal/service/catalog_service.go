package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/domain/repository"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

// MaxListSize caps every catalog listing.
const MaxListSize = 1000

// CatalogService manages subjects, 3D models and questions
type CatalogService struct {
	subjectRepo  repository.SubjectRepository
	modelRepo    repository.ModelRepository
	questionRepo repository.QuestionRepository
}

// NewCatalogService creates the catalog service
func NewCatalogService(
	subjectRepo repository.SubjectRepository,
	modelRepo repository.ModelRepository,
	questionRepo repository.QuestionRepository,
) *CatalogService {
	return &CatalogService{subjectRepo: subjectRepo, modelRepo: modelRepo, questionRepo: questionRepo}
}

func (s *CatalogService) ListSubjects(ctx context.Context) ([]entity.Subject, error) {
	return s.subjectRepo.List(ctx, MaxListSize)
}

func (s *CatalogService) GetSubject(ctx context.Context, id string) (*entity.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrSubjectNotFound
	}
	return subject, err
}

func (s *CatalogService) CreateSubject(ctx context.Context, subject *entity.Subject) error {
	subject.Name = strings.TrimSpace(subject.Name)
	if subject.Name == "" {
		return apperrors.New(apperrors.ErrValidation, "Subject name is required")
	}
	return s.subjectRepo.Create(ctx, subject)
}

func (s *CatalogService) ListModels(ctx context.Context, subjectID string) ([]entity.Model3D, error) {
	return s.modelRepo.List(ctx, subjectID, MaxListSize)
}

func (s *CatalogService) GetModel(ctx context.Context, id string) (*entity.Model3D, error) {
	model, err := s.modelRepo.GetByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrModelNotFound
	}
	return model, err
}

// CreateModel stores a 3D model under an existing subject
func (s *CatalogService) CreateModel(ctx context.Context, model *entity.Model3D) error {
	if strings.TrimSpace(model.Title) == "" || strings.TrimSpace(model.ModelURL) == "" {
		return apperrors.New(apperrors.ErrValidation, "Model title and model_url are required")
	}
	if _, err := s.GetSubject(ctx, model.SubjectID); err != nil {
		return err
	}
	return s.modelRepo.Create(ctx, model)
}

// ListQuestions returns a model's questions, optionally of one difficulty
func (s *CatalogService) ListQuestions(ctx context.Context, modelID, difficulty string) ([]entity.Question, error) {
	if difficulty != "" && !entity.IsValidDifficulty(difficulty) {
		return nil, apperrors.New(apperrors.ErrValidation, "difficulty must be one of easy, medium, hard")
	}
	filter := repository.QuestionFilter{ModelID: modelID, Difficulty: difficulty}
	return s.questionRepo.List(ctx, filter, MaxListSize)
}

// CreateQuestion validates and stores a question. Questions are never updated afterwards.
func (s *CatalogService) CreateQuestion(ctx context.Context, question *entity.Question) error {
	if question.Difficulty == "" {
		question.Difficulty = entity.DifficultyMedium
	}
	if err := question.Validate(); err != nil {
		return apperrors.New(apperrors.ErrValidation, err.Error())
	}

	model, err := s.GetModel(ctx, question.ModelID)
	if err != nil {
		return err
	}
	if model.SubjectID != question.SubjectID {
		return apperrors.New(apperrors.ErrValidation,
			fmt.Sprintf("model %s does not belong to subject %s", question.ModelID, question.SubjectID))
	}
	return s.questionRepo.Create(ctx, question)
}
