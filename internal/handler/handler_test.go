package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/middleware"
	"github.com/arlearn/assessment-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext builds a *gin.Context with an optional JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func withUser(c *gin.Context, user *entity.User) {
	c.Set(middleware.ContextUserID, user.ID)
	c.Set(middleware.ContextUserRole, user.Role)
	c.Set(middleware.ContextUser, user)
}

func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) Register(ctx context.Context, input service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) ListSubjects(ctx context.Context) ([]entity.Subject, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Subject), args.Error(1)
}

func (m *MockCatalogService) GetSubject(ctx context.Context, id string) (*entity.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subject), args.Error(1)
}

func (m *MockCatalogService) CreateSubject(ctx context.Context, subject *entity.Subject) error {
	return m.Called(ctx, subject).Error(0)
}

func (m *MockCatalogService) ListModels(ctx context.Context, subjectID string) ([]entity.Model3D, error) {
	args := m.Called(ctx, subjectID)
	return args.Get(0).([]entity.Model3D), args.Error(1)
}

func (m *MockCatalogService) GetModel(ctx context.Context, id string) (*entity.Model3D, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Model3D), args.Error(1)
}

func (m *MockCatalogService) CreateModel(ctx context.Context, model *entity.Model3D) error {
	return m.Called(ctx, model).Error(0)
}

func (m *MockCatalogService) ListQuestions(ctx context.Context, modelID, difficulty string) ([]entity.Question, error) {
	args := m.Called(ctx, modelID, difficulty)
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockCatalogService) CreateQuestion(ctx context.Context, question *entity.Question) error {
	return m.Called(ctx, question).Error(0)
}

type MockScorer struct{ mock.Mock }

func (m *MockScorer) SubmitAssessment(ctx context.Context, input service.SubmitInput) (*service.SubmissionOutcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionOutcome), args.Error(1)
}

type MockPerformanceReader struct{ mock.Mock }

func (m *MockPerformanceReader) GetPerformance(ctx context.Context, userID string) (*service.PerformanceStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PerformanceStats), args.Error(1)
}

func (m *MockPerformanceReader) GetHistory(ctx context.Context, userID string) ([]service.HistoryRow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.HistoryRow), args.Error(1)
}

type MockLeaderboardReader struct{ mock.Mock }

func (m *MockLeaderboardReader) GetLeaderboard(ctx context.Context, limit int) ([]service.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.LeaderboardEntry), args.Error(1)
}

type MockDataSeeder struct{ mock.Mock }

func (m *MockDataSeeder) SeedSampleData(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
