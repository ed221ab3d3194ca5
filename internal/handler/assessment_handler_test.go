package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
	"github.com/arlearn/assessment-api/internal/service"
)

var learner = &entity.User{ID: "u-1", Name: "Ada", Role: entity.RoleStudent}

func newAssessmentHandler() (*AssessmentHandler, *MockScorer, *MockPerformanceReader, *MockLeaderboardReader) {
	scorer := new(MockScorer)
	perf := new(MockPerformanceReader)
	board := new(MockLeaderboardReader)
	return NewAssessmentHandler(scorer, perf, board, 10, 100), scorer, perf, board
}

func TestSubmit_QueryParamsAndBody(t *testing.T) {
	// Arrange
	h, scorer, _, _ := newAssessmentHandler()
	spent := 12
	scorer.On("SubmitAssessment", mock.Anything, service.SubmitInput{
		UserID:         "u-1",
		SubjectID:      "s-1",
		ModelID:        "m-body",
		QuestionID:     "q-1",
		SelectedAnswer: 0,
		TimeSpent:      &spent,
	}).Return(&service.SubmissionOutcome{
		ResultID: "r-1", IsCorrect: false, CorrectAnswer: 2,
		NextDifficulty: entity.DifficultyEasy, Accuracy: 0, Feedback: "The correct answer was: 4",
	}, nil)

	c, w := newTestGinContext(http.MethodPost, "/api/assessments/submit?subject_id=s-1&model_id=m-query&time_spent=12",
		map[string]interface{}{"question_id": "q-1", "selected_answer": 0, "model_id": "m-body"})
	withUser(c, learner)

	// Act
	h.Submit(c)

	// Assert
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := parseJSONResponse(t, w)
	assert.Equal(t, false, resp["is_correct"])
	assert.Equal(t, float64(2), resp["correct_answer"])
	assert.Equal(t, "easy", resp["next_difficulty"])
	assert.Equal(t, "The correct answer was: 4", resp["feedback"])
	scorer.AssertExpectations(t)
}

func TestSubmit_BadRequests(t *testing.T) {
	h, scorer, _, _ := newAssessmentHandler()

	tests := []struct {
		name string
		url  string
		body interface{}
	}{
		{name: "missing selected_answer", url: "/api/assessments/submit", body: map[string]interface{}{"question_id": "q-1"}},
		{name: "missing question_id", url: "/api/assessments/submit", body: map[string]interface{}{"selected_answer": 1}},
		{name: "negative time in body", url: "/api/assessments/submit", body: map[string]interface{}{"question_id": "q-1", "selected_answer": 1, "time_spent": -3}},
		{name: "garbage time in query", url: "/api/assessments/submit?time_spent=abc", body: map[string]interface{}{"question_id": "q-1", "selected_answer": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, tt.url, tt.body)
			withUser(c, learner)

			h.Submit(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	scorer.AssertNotCalled(t, "SubmitAssessment", mock.Anything, mock.Anything)
}

func TestSubmit_QuestionNotFound(t *testing.T) {
	h, scorer, _, _ := newAssessmentHandler()
	scorer.On("SubmitAssessment", mock.Anything, mock.Anything).Return(nil, service.ErrQuestionNotFound)

	c, w := newTestGinContext(http.MethodPost, "/api/assessments/submit",
		map[string]interface{}{"question_id": "missing", "selected_answer": 1})
	withUser(c, learner)
	h.Submit(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Question not found", parseJSONResponse(t, w)["error"])
}

func TestGetPerformance(t *testing.T) {
	h, _, perf, _ := newAssessmentHandler()
	avg := 20.0
	perf.On("GetPerformance", mock.Anything, "u-1").Return(&service.PerformanceStats{
		TotalAssessments: 3,
		CorrectAnswers:   1,
		Accuracy:         1.0 / 3,
		SubjectWisePerformance: map[string]*service.SubjectPerformance{
			"Anatomy": {Total: 3, Correct: 1, Accuracy: 1.0 / 3, SubjectID: "s-1"},
		},
		WeakTopics:   []string{"Anatomy"},
		AvgTimeSpent: &avg,
	}, nil)

	c, w := newTestGinContext(http.MethodGet, "/api/performance", nil)
	withUser(c, learner)
	h.GetPerformance(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, float64(3), resp["total_assessments"])
	assert.Equal(t, []interface{}{"Anatomy"}, resp["weak_topics"])
	assert.Equal(t, 20.0, resp["avg_time_spent"])
	assert.Contains(t, resp["subject_wise_performance"], "Anatomy")
}

func historyFixture() []service.HistoryRow {
	return []service.HistoryRow{{
		AssessmentResult: entity.AssessmentResult{
			SubjectID: "s-1", ModelID: "m-1", QuestionID: "q-1", SelectedAnswer: 1,
			IsCorrect: true, CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		SubjectName: "Anatomy",
	}}
}

func TestExportHistory_CSV(t *testing.T) {
	h, _, perf, _ := newAssessmentHandler()
	perf.On("GetHistory", mock.Anything, "u-1").Return(historyFixture(), nil)

	c, w := newTestGinContext(http.MethodGet, "/api/performance/export", nil)
	withUser(c, learner)
	h.ExportHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "Anatomy")
}

func TestExportHistory_XLSX(t *testing.T) {
	h, _, perf, _ := newAssessmentHandler()
	perf.On("GetHistory", mock.Anything, "u-1").Return(historyFixture(), nil)

	c, w := newTestGinContext(http.MethodGet, "/api/performance/export?format=xlsx", nil)
	withUser(c, learner)
	h.ExportHistory(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("History")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportHistory_UnknownFormat(t *testing.T) {
	h, _, perf, _ := newAssessmentHandler()

	c, w := newTestGinContext(http.MethodGet, "/api/performance/export?format=pdf", nil)
	withUser(c, learner)
	h.ExportHistory(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	perf.AssertNotCalled(t, "GetHistory", mock.Anything, mock.Anything)
}

func TestGetLeaderboard_LimitClamping(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 10},
		{query: "?limit=5", want: 5},
		{query: "?limit=0", want: 1},
		{query: "?limit=-4", want: 1},
		{query: "?limit=1000", want: 100},
		{query: "?limit=abc", want: 10},
	}

	for _, tt := range tests {
		t.Run("limit"+tt.query, func(t *testing.T) {
			h, _, _, board := newAssessmentHandler()
			board.On("GetLeaderboard", mock.Anything, tt.want).Return([]service.LeaderboardEntry{}, nil)

			c, w := newTestGinContext(http.MethodGet, "/api/leaderboard"+tt.query, nil)
			withUser(c, learner)
			h.GetLeaderboard(c)

			assert.Equal(t, http.StatusOK, w.Code)
			board.AssertExpectations(t)
		})
	}
}

func TestGetLeaderboard_Entries(t *testing.T) {
	h, _, _, board := newAssessmentHandler()
	board.On("GetLeaderboard", mock.Anything, 10).Return([]service.LeaderboardEntry{
		{Name: "Ada", Accuracy: 66.67, TotalAssessments: 3},
		{Name: "Bob", Accuracy: 50, TotalAssessments: 2},
	}, nil)

	c, w := newTestGinContext(http.MethodGet, "/api/leaderboard", nil)
	withUser(c, learner)
	h.GetLeaderboard(c)

	require.Equal(t, http.StatusOK, w.Code)
	var entries []service.LeaderboardEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Ada", entries[0].Name)
	assert.Equal(t, 66.67, entries[0].Accuracy)
}

func TestGetLeaderboard_StorageFailure(t *testing.T) {
	h, _, _, board := newAssessmentHandler()
	board.On("GetLeaderboard", mock.Anything, 10).Return(nil, errors.New("db down"))

	c, w := newTestGinContext(http.MethodGet, "/api/leaderboard", nil)
	withUser(c, learner)
	h.GetLeaderboard(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleError_Mapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: apperrors.New(apperrors.ErrNotFound, "x"), want: http.StatusNotFound},
		{err: apperrors.ErrUnauthorized, want: http.StatusUnauthorized},
		{err: apperrors.ErrExpiredToken, want: http.StatusUnauthorized},
		{err: apperrors.ErrForbidden, want: http.StatusForbidden},
		{err: apperrors.New(apperrors.ErrValidation, "bad"), want: http.StatusBadRequest},
		{err: apperrors.New(apperrors.ErrConflict, "dup"), want: http.StatusBadRequest},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		c, w := newTestGinContext(http.MethodGet, "/", nil)
		handleError(c, tt.err, "test")
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}
