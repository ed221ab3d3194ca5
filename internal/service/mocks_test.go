package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/domain/repository"
)

// ============================================================================
// Repository mocks
// ============================================================================

type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByID(ctx context.Context, id string) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) List(ctx context.Context, filter repository.QuestionFilter, limit int) ([]entity.Question, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) Create(ctx context.Context, result *entity.AssessmentResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepo) GetRecentBySubject(ctx context.Context, userID, subjectID string, limit int) ([]entity.AssessmentResult, error) {
	args := m.Called(ctx, userID, subjectID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AssessmentResult), args.Error(1)
}

func (m *MockResultRepo) GetUserHistory(ctx context.Context, userID string, limit int) ([]entity.AssessmentResult, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AssessmentResult), args.Error(1)
}

func (m *MockResultRepo) GetSubjectTallies(ctx context.Context, userID string, historyLimit int, countZeroTime bool) ([]repository.SubjectTally, error) {
	args := m.Called(ctx, userID, historyLimit, countZeroTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SubjectTally), args.Error(1)
}

func (m *MockResultRepo) GetUserTallies(ctx context.Context, limit int) ([]repository.UserTally, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserTally), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*entity.User), args.Error(1)
}

type MockSubjectRepo struct {
	mock.Mock
}

func (m *MockSubjectRepo) Create(ctx context.Context, subject *entity.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepo) GetByID(ctx context.Context, id string) (*entity.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subject), args.Error(1)
}

func (m *MockSubjectRepo) List(ctx context.Context, limit int) ([]entity.Subject, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subject), args.Error(1)
}

func (m *MockSubjectRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockModelRepo struct {
	mock.Mock
}

func (m *MockModelRepo) Create(ctx context.Context, model *entity.Model3D) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockModelRepo) GetByID(ctx context.Context, id string) (*entity.Model3D, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Model3D), args.Error(1)
}

func (m *MockModelRepo) List(ctx context.Context, subjectID string, limit int) ([]entity.Model3D, error) {
	args := m.Called(ctx, subjectID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Model3D), args.Error(1)
}

type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(user *entity.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
