package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/domain/repository"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
	"github.com/arlearn/assessment-api/internal/service/adaptive"
)

const feedbackCorrect = "Great job!"

// SubmitInput is one answer submitted by a learner
type SubmitInput struct {
	UserID         string
	SubjectID      string
	ModelID        string
	QuestionID     string
	SelectedAnswer int
	TimeSpent      *int
}

// SubmissionOutcome is the graded answer plus the adaptive recommendation
type SubmissionOutcome struct {
	ResultID       string  `json:"result_id"`
	IsCorrect      bool    `json:"is_correct"`
	CorrectAnswer  int     `json:"correct_answer"`
	NextDifficulty string  `json:"next_difficulty"`
	Accuracy       float64 `json:"accuracy"`
	Feedback       string  `json:"feedback"`
}

// AssessmentService grades submissions and records them in the assessment log
type AssessmentService struct {
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	policy       adaptive.Policy
	now          func() time.Time
}

// NewAssessmentService creates the scoring service
func NewAssessmentService(
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	policy adaptive.Policy,
) (*AssessmentService, error) {
	if questionRepo == nil {
		return nil, fmt.Errorf("QuestionRepository is required for AssessmentService")
	}
	if resultRepo == nil {
		return nil, fmt.Errorf("ResultRepository is required for AssessmentService")
	}
	return &AssessmentService{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		policy:       policy.Normalize(),
		now:          time.Now,
	}, nil
}

// SubmitAssessment grades the answer, appends it to the log and recommends the next difficulty.
// Every call appends a new row; repeated submissions are not deduplicated.
func (s *AssessmentService) SubmitAssessment(ctx context.Context, input SubmitInput) (*SubmissionOutcome, error) {
	if input.UserID == "" || input.QuestionID == "" {
		return nil, fmt.Errorf("%w: user and question are required", apperrors.ErrValidation)
	}
	if input.TimeSpent != nil && *input.TimeSpent < 0 {
		return nil, apperrors.New(apperrors.ErrValidation, "time_spent must not be negative")
	}

	question, err := s.questionRepo.GetByID(ctx, input.QuestionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to load question %s: %w", input.QuestionID, err)
	}

	// Clients normally send the subject and model the question was shown under.
	subjectID := input.SubjectID
	if subjectID == "" {
		subjectID = question.SubjectID
	}
	modelID := input.ModelID
	if modelID == "" {
		modelID = question.ModelID
	}

	isCorrect := question.IsCorrect(input.SelectedAnswer)
	result := &entity.AssessmentResult{
		UserID:         input.UserID,
		SubjectID:      subjectID,
		ModelID:        modelID,
		QuestionID:     question.ID,
		SelectedAnswer: input.SelectedAnswer,
		IsCorrect:      isCorrect,
		TimeSpent:      input.TimeSpent,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save assessment result: %w", err)
	}

	window, err := s.resultRepo.GetRecentBySubject(ctx, input.UserID, subjectID, s.policy.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent results: %w", err)
	}
	nextDifficulty, accuracy := s.policy.Recommend(window)

	log.Printf("[AssessmentService] user=%s question=%s correct=%t window=%d accuracy=%.2f next=%s",
		input.UserID, question.ID, isCorrect, len(window), accuracy, nextDifficulty)

	return &SubmissionOutcome{
		ResultID:       result.ID,
		IsCorrect:      isCorrect,
		CorrectAnswer:  question.CorrectAnswer,
		NextDifficulty: nextDifficulty,
		Accuracy:       accuracy,
		Feedback:       feedbackFor(question, isCorrect),
	}, nil
}

func feedbackFor(question *entity.Question, isCorrect bool) string {
	if isCorrect {
		return feedbackCorrect
	}
	text, ok := question.CorrectOptionText()
	if !ok {
		text = strconv.Itoa(question.CorrectAnswer)
	}
	return "The correct answer was: " + text
}
