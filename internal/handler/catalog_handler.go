package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/handler/dto"
)

// CatalogService is what CatalogHandler needs from the catalog service
type CatalogService interface {
	ListSubjects(ctx context.Context) ([]entity.Subject, error)
	GetSubject(ctx context.Context, id string) (*entity.Subject, error)
	CreateSubject(ctx context.Context, subject *entity.Subject) error
	ListModels(ctx context.Context, subjectID string) ([]entity.Model3D, error)
	GetModel(ctx context.Context, id string) (*entity.Model3D, error)
	CreateModel(ctx context.Context, model *entity.Model3D) error
	ListQuestions(ctx context.Context, modelID, difficulty string) ([]entity.Question, error)
	CreateQuestion(ctx context.Context, question *entity.Question) error
}

// CatalogHandler serves subjects, 3D models and questions
type CatalogHandler struct {
	catalog CatalogService
}

// NewCatalogHandler creates the catalog handler
func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListSubjects lists every subject.
// GET /api/subjects
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalog.ListSubjects(c.Request.Context())
	if err != nil {
		handleError(c, err, "ListSubjects")
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// GetSubject returns one subject.
// GET /api/subjects/:id
func (h *CatalogHandler) GetSubject(c *gin.Context) {
	subject, err := h.catalog.GetSubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "GetSubject")
		return
	}
	c.JSON(http.StatusOK, subject)
}

// CreateSubject adds a subject. Admin only.
// POST /api/subjects
func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	subject := &entity.Subject{Name: req.Name, Description: req.Description, Category: req.Category}
	if err := h.catalog.CreateSubject(c.Request.Context(), subject); err != nil {
		handleError(c, err, "CreateSubject")
		return
	}
	c.JSON(http.StatusOK, subject)
}

// ListModels lists models, optionally filtered by subject.
// GET /api/models?subject_id=
func (h *CatalogHandler) ListModels(c *gin.Context) {
	models, err := h.catalog.ListModels(c.Request.Context(), c.Query("subject_id"))
	if err != nil {
		handleError(c, err, "ListModels")
		return
	}
	c.JSON(http.StatusOK, models)
}

// GetModel returns one 3D model.
// GET /api/models/:id
func (h *CatalogHandler) GetModel(c *gin.Context) {
	model, err := h.catalog.GetModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "GetModel")
		return
	}
	c.JSON(http.StatusOK, model)
}

// CreateModel adds a 3D model to an existing subject. Admin only.
// POST /api/models
func (h *CatalogHandler) CreateModel(c *gin.Context) {
	var req dto.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	model := &entity.Model3D{
		Title:       req.Title,
		Description: req.Description,
		ModelURL:    req.ModelURL,
		SubjectID:   req.SubjectID,
		Labels:      entity.StringArray(req.Labels),
	}
	if err := h.catalog.CreateModel(c.Request.Context(), model); err != nil {
		handleError(c, err, "CreateModel")
		return
	}
	c.JSON(http.StatusOK, model)
}

// ListQuestions lists the questions of one model, answer keys included.
// GET /api/questions/:model_id?difficulty=
func (h *CatalogHandler) ListQuestions(c *gin.Context) {
	questions, err := h.catalog.ListQuestions(c.Request.Context(), c.Param("model_id"), c.Query("difficulty"))
	if err != nil {
		handleError(c, err, "ListQuestions")
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestion adds a question to an existing model. Admin only.
// POST /api/questions
func (h *CatalogHandler) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	question := &entity.Question{
		SubjectID:     req.SubjectID,
		ModelID:       req.ModelID,
		QuestionText:  req.QuestionText,
		Options:       entity.StringArray(req.Options),
		CorrectAnswer: *req.CorrectAnswer,
		Difficulty:    req.Difficulty,
	}
	if err := h.catalog.CreateQuestion(c.Request.Context(), question); err != nil {
		handleError(c, err, "CreateQuestion")
		return
	}
	c.JSON(http.StatusOK, question)
}
