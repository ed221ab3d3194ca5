package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/domain/repository"
)

// newestFirst orders the assessment log by recency; seq breaks created_at ties.
const newestFirst = "created_at DESC, seq DESC"

// subjectTalliesQuery aggregates a user's newest N results per subject.
// Parameters: countZeroTime, countZeroTime, userID, limit.
const subjectTalliesQuery = `
SELECT
	subject_id,
	COUNT(*) AS total,
	COUNT(*) FILTER (WHERE is_correct) AS correct,
	COUNT(*) FILTER (WHERE time_spent IS NOT NULL AND (? OR time_spent <> 0)) AS timed_count,
	COALESCE(SUM(time_spent) FILTER (WHERE time_spent IS NOT NULL AND (? OR time_spent <> 0)), 0) AS timed_sum,
	MIN(rn) AS first_seq
FROM (
	SELECT subject_id, is_correct, time_spent,
		ROW_NUMBER() OVER (ORDER BY created_at DESC, seq DESC) AS rn
	FROM assessment_results
	WHERE user_id = ?
	ORDER BY created_at DESC, seq DESC
	LIMIT ?
) recent
GROUP BY subject_id
ORDER BY first_seq`

// ResultRepo implements repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo creates a new assessment result repository
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Create appends a result row
func (r *ResultRepo) Create(ctx context.Context, result *entity.AssessmentResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

// GetRecentBySubject returns the user's newest results for one subject
func (r *ResultRepo) GetRecentBySubject(ctx context.Context, userID, subjectID string, limit int) ([]entity.AssessmentResult, error) {
	var results []entity.AssessmentResult
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Order(newestFirst).
		Limit(limit).
		Find(&results).Error
	return results, err
}

// GetUserHistory returns the user's newest results across all subjects
func (r *ResultRepo) GetUserHistory(ctx context.Context, userID string, limit int) ([]entity.AssessmentResult, error) {
	var results []entity.AssessmentResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(newestFirst).
		Limit(limit).
		Find(&results).Error
	return results, err
}

// GetSubjectTallies aggregates the user's recent results per subject in SQL
func (r *ResultRepo) GetSubjectTallies(ctx context.Context, userID string, historyLimit int, countZeroTime bool) ([]repository.SubjectTally, error) {
	var tallies []repository.SubjectTally
	err := r.db.WithContext(ctx).
		Raw(subjectTalliesQuery, countZeroTime, countZeroTime, userID, historyLimit).
		Scan(&tallies).Error
	return tallies, err
}

// GetUserTallies computes per-user accuracy over the whole log
func (r *ResultRepo) GetUserTallies(ctx context.Context, limit int) ([]repository.UserTally, error) {
	var tallies []repository.UserTally
	err := r.db.WithContext(ctx).
		Model(&entity.AssessmentResult{}).
		Select("user_id, COUNT(*) AS total, " +
			"COUNT(*) FILTER (WHERE is_correct) AS correct, " +
			"(COUNT(*) FILTER (WHERE is_correct))::float8 / COUNT(*) AS accuracy").
		Group("user_id").
		Order("accuracy DESC, total DESC, user_id ASC").
		Limit(limit).
		Scan(&tallies).Error
	return tallies, err
}
