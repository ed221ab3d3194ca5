package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arlearn/assessment-api/internal/handler/dto"
	"github.com/arlearn/assessment-api/internal/handler/helper"
	"github.com/arlearn/assessment-api/internal/middleware"
	"github.com/arlearn/assessment-api/internal/service"
)

// Scorer grades submitted answers
type Scorer interface {
	SubmitAssessment(ctx context.Context, input service.SubmitInput) (*service.SubmissionOutcome, error)
}

// PerformanceReader aggregates and exports a learner's history
type PerformanceReader interface {
	GetPerformance(ctx context.Context, userID string) (*service.PerformanceStats, error)
	GetHistory(ctx context.Context, userID string) ([]service.HistoryRow, error)
}

// LeaderboardReader ranks users by accuracy
type LeaderboardReader interface {
	GetLeaderboard(ctx context.Context, limit int) ([]service.LeaderboardEntry, error)
}

// AssessmentHandler serves submissions, performance stats, history export and the leaderboard
type AssessmentHandler struct {
	scorer       Scorer
	performance  PerformanceReader
	leaderboard  LeaderboardReader
	defaultLimit int
	maxLimit     int
}

// NewAssessmentHandler creates the assessment handler. Leaderboard limits below 1 fall back to 10 and 100.
func NewAssessmentHandler(
	scorer Scorer,
	performance PerformanceReader,
	leaderboard LeaderboardReader,
	defaultLimit, maxLimit int,
) *AssessmentHandler {
	if maxLimit < 1 {
		maxLimit = 100
	}
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &AssessmentHandler{
		scorer:       scorer,
		performance:  performance,
		leaderboard:  leaderboard,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Submit grades one answer.
// POST /api/assessments/submit?subject_id=&model_id=&time_spent=
// Fields in the JSON body win over query parameters.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req dto.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	input := service.SubmitInput{
		UserID:         c.GetString(middleware.ContextUserID),
		SubjectID:      firstNonEmpty(req.SubjectID, c.Query("subject_id")),
		ModelID:        firstNonEmpty(req.ModelID, c.Query("model_id")),
		QuestionID:     req.QuestionID,
		SelectedAnswer: *req.SelectedAnswer,
		TimeSpent:      req.TimeSpent,
	}

	if input.TimeSpent == nil {
		if raw := c.Query("time_spent"); raw != "" {
			spent, err := strconv.Atoi(raw)
			if err != nil || spent < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "time_spent must be a non-negative integer"})
				return
			}
			input.TimeSpent = &spent
		}
	}

	outcome, err := h.scorer.SubmitAssessment(c.Request.Context(), input)
	if err != nil {
		handleError(c, err, "Submit")
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// GetPerformance returns the caller's aggregated statistics.
// GET /api/performance
func (h *AssessmentHandler) GetPerformance(c *gin.Context) {
	stats, err := h.performance.GetPerformance(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		handleError(c, err, "GetPerformance")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportHistory streams the caller's attempts as CSV or XLSX.
// GET /api/performance/export?format=csv|xlsx
func (h *AssessmentHandler) ExportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	rows, err := h.performance.GetHistory(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err, "ExportHistory")
		return
	}

	filename := fmt.Sprintf("assessment_history_%s", time.Now().UTC().Format("2006-01-02"))

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
		if err := helper.WriteHistoryXLSX(c.Writer, rows); err != nil {
			log.Printf("[AssessmentHandler] XLSX export failed for user %s: %v", userID, err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	if err := helper.WriteHistoryCSV(c.Writer, rows); err != nil {
		log.Printf("[AssessmentHandler] CSV export failed for user %s: %v", userID, err)
	}
}

// GetLeaderboard returns the top users by accuracy.
// GET /api/leaderboard?limit=
func (h *AssessmentHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultLimit)))
	if err != nil {
		limit = h.defaultLimit
	}
	if limit < 1 {
		limit = 1
	} else if limit > h.maxLimit {
		limit = h.maxLimit
	}

	entries, err := h.leaderboard.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err, "GetLeaderboard")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
