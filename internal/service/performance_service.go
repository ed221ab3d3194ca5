package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/arlearn/assessment-api/internal/config"
	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/domain/repository"
)

// SubjectPerformance is one per-subject bucket, keyed by display name in PerformanceStats
type SubjectPerformance struct {
	Total     int64   `json:"total"`
	Correct   int64   `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
	SubjectID string  `json:"subject_id"`
}

// PerformanceStats summarises a learner's history
type PerformanceStats struct {
	TotalAssessments       int64                          `json:"total_assessments"`
	CorrectAnswers         int64                          `json:"correct_answers"`
	Accuracy               float64                        `json:"accuracy"`
	SubjectWisePerformance map[string]*SubjectPerformance `json:"subject_wise_performance"`
	WeakTopics             []string                       `json:"weak_topics"`
	AvgTimeSpent           *float64                       `json:"avg_time_spent"`
}

// HistoryRow is one exported attempt with its subject name resolved
type HistoryRow struct {
	entity.AssessmentResult
	SubjectName string
}

// PerformanceService aggregates a learner's assessment log
type PerformanceService struct {
	resultRepo    repository.ResultRepository
	resolver      *SubjectNameResolver
	historyLimit  int
	weakThreshold float64
	countZeroTime bool
}

// NewPerformanceService creates the aggregation service
func NewPerformanceService(
	resultRepo repository.ResultRepository,
	resolver *SubjectNameResolver,
	cfg config.AssessmentConfig,
) (*PerformanceService, error) {
	if resultRepo == nil {
		return nil, fmt.Errorf("ResultRepository is required for PerformanceService")
	}
	if resolver == nil {
		return nil, fmt.Errorf("SubjectNameResolver is required for PerformanceService")
	}
	return &PerformanceService{
		resultRepo:    resultRepo,
		resolver:      resolver,
		historyLimit:  cfg.HistoryLimit,
		weakThreshold: cfg.WeakThreshold,
		countZeroTime: cfg.CountZeroTimeSpent,
	}, nil
}

// GetPerformance summarises the user's most recent historyLimit results
func (s *PerformanceService) GetPerformance(ctx context.Context, userID string) (*PerformanceStats, error) {
	tallies, err := s.resultRepo.GetSubjectTallies(ctx, userID, s.historyLimit, s.countZeroTime)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate results for user %s: %w", userID, err)
	}
	if len(tallies) == 0 {
		return emptyPerformance(), nil
	}

	ids := make([]string, len(tallies))
	for i, t := range tallies {
		ids[i] = t.SubjectID
	}
	names, err := s.resolver.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	return buildPerformance(tallies, names, s.weakThreshold), nil
}

// GetHistory returns the user's newest results with subject names, for export
func (s *PerformanceService) GetHistory(ctx context.Context, userID string) ([]HistoryRow, error) {
	results, err := s.resultRepo.GetUserHistory(ctx, userID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for user %s: %w", userID, err)
	}

	ids := make([]string, len(results))
	for i := range results {
		ids[i] = results[i].SubjectID
	}
	names, err := s.resolver.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]HistoryRow, len(results))
	for i := range results {
		rows[i] = HistoryRow{AssessmentResult: results[i], SubjectName: names[results[i].SubjectID]}
	}
	return rows, nil
}

func emptyPerformance() *PerformanceStats {
	return &PerformanceStats{
		SubjectWisePerformance: map[string]*SubjectPerformance{},
		WeakTopics:             []string{},
	}
}

// buildPerformance folds per-subject tallies into name-keyed buckets.
// tallies must be ordered by first appearance; subjects sharing a display name
// merge into one bucket that keeps the first subject ID.
func buildPerformance(tallies []repository.SubjectTally, names map[string]string, weakThreshold float64) *PerformanceStats {
	stats := emptyPerformance()
	var timedCount, timedSum int64

	for _, t := range tallies {
		name := names[t.SubjectID]
		if name == "" {
			name = fallbackSubjectName(t.SubjectID)
		}

		bucket, ok := stats.SubjectWisePerformance[name]
		if !ok {
			bucket = &SubjectPerformance{SubjectID: t.SubjectID}
			stats.SubjectWisePerformance[name] = bucket
		}
		bucket.Total += t.Total
		bucket.Correct += t.Correct

		stats.TotalAssessments += t.Total
		stats.CorrectAnswers += t.Correct
		timedCount += t.TimedCount
		timedSum += t.TimedSum
	}

	if stats.TotalAssessments == 0 {
		return emptyPerformance()
	}
	stats.Accuracy = float64(stats.CorrectAnswers) / float64(stats.TotalAssessments)

	for name, bucket := range stats.SubjectWisePerformance {
		bucket.Accuracy = float64(bucket.Correct) / float64(bucket.Total)
		if bucket.Accuracy < weakThreshold {
			stats.WeakTopics = append(stats.WeakTopics, name)
		}
	}
	sort.Strings(stats.WeakTopics)

	if timedCount > 0 {
		avg := float64(timedSum) / float64(timedCount)
		stats.AvgTimeSpent = &avg
	}
	return stats
}
