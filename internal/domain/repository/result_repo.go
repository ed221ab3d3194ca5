package repository

import (
	"context"

	"github.com/arlearn/assessment-api/internal/domain/entity"
)

// SubjectTally is the per-subject aggregate over a user's recent history.
type SubjectTally struct {
	SubjectID  string
	Total      int64
	Correct    int64
	TimedCount int64
	TimedSum   int64
	// FirstSeq orders buckets by the first row of the subject encountered
	// in newest-first order.
	FirstSeq int64
}

// UserTally is the platform-wide aggregate for one user.
type UserTally struct {
	UserID   string
	Total    int64
	Correct  int64
	Accuracy float64
}

// ResultRepository defines access to the append-only assessment log.
// Every list it returns is ordered newest first, ties broken by insertion order.
type ResultRepository interface {
	Create(ctx context.Context, result *entity.AssessmentResult) error
	// GetRecentBySubject returns at most limit of the user's newest results for one subject.
	GetRecentBySubject(ctx context.Context, userID, subjectID string, limit int) ([]entity.AssessmentResult, error)
	// GetUserHistory returns at most limit of the user's newest results across all subjects.
	GetUserHistory(ctx context.Context, userID string, limit int) ([]entity.AssessmentResult, error)
	// GetSubjectTallies aggregates the user's newest historyLimit results per subject.
	GetSubjectTallies(ctx context.Context, userID string, historyLimit int, countZeroTime bool) ([]SubjectTally, error)
	// GetUserTallies returns at most limit users ordered by accuracy desc, total desc, user id asc.
	GetUserTallies(ctx context.Context, limit int) ([]UserTally, error)
}
