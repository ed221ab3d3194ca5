package service

import (
	"context"
	"sort"
	"sync"

	"github.com/arlearn/assessment-api/internal/domain/entity"
	"github.com/arlearn/assessment-api/internal/domain/repository"
)

// memoryResultRepo is an in-memory assessment log that aggregates the same
// way the postgres repository does.
type memoryResultRepo struct {
	mu   sync.Mutex
	rows []entity.AssessmentResult
	seq  int64
}

var _ repository.ResultRepository = (*memoryResultRepo)(nil)

func (m *memoryResultRepo) Create(_ context.Context, result *entity.AssessmentResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	result.Seq = m.seq
	m.rows = append(m.rows, *result)
	return nil
}

// newestFirst returns the matching rows ordered by created_at desc, seq desc.
func (m *memoryResultRepo) newestFirst(keep func(entity.AssessmentResult) bool) []entity.AssessmentResult {
	var out []entity.AssessmentResult
	for _, r := range m.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Seq > out[j].Seq
	})
	return out
}

func truncate(rows []entity.AssessmentResult, limit int) []entity.AssessmentResult {
	if limit >= 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func (m *memoryResultRepo) GetRecentBySubject(_ context.Context, userID, subjectID string, limit int) ([]entity.AssessmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.newestFirst(func(r entity.AssessmentResult) bool {
		return r.UserID == userID && r.SubjectID == subjectID
	})
	return truncate(rows, limit), nil
}

func (m *memoryResultRepo) GetUserHistory(_ context.Context, userID string, limit int) ([]entity.AssessmentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.newestFirst(func(r entity.AssessmentResult) bool { return r.UserID == userID })
	return truncate(rows, limit), nil
}

func (m *memoryResultRepo) GetSubjectTallies(_ context.Context, userID string, historyLimit int, countZeroTime bool) ([]repository.SubjectTally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := truncate(m.newestFirst(func(r entity.AssessmentResult) bool { return r.UserID == userID }), historyLimit)

	var tallies []repository.SubjectTally
	index := map[string]int{}
	for i := range rows {
		r := &rows[i]
		pos, ok := index[r.SubjectID]
		if !ok {
			pos = len(tallies)
			index[r.SubjectID] = pos
			tallies = append(tallies, repository.SubjectTally{SubjectID: r.SubjectID, FirstSeq: int64(i + 1)})
		}
		t := &tallies[pos]
		t.Total++
		if r.IsCorrect {
			t.Correct++
		}
		if r.HasRecordedTime(countZeroTime) {
			t.TimedCount++
			t.TimedSum += int64(*r.TimeSpent)
		}
	}
	return tallies, nil
}

func (m *memoryResultRepo) GetUserTallies(_ context.Context, limit int) ([]repository.UserTally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	index := map[string]*repository.UserTally{}
	var tallies []*repository.UserTally
	for _, r := range m.rows {
		t, ok := index[r.UserID]
		if !ok {
			t = &repository.UserTally{UserID: r.UserID}
			index[r.UserID] = t
			tallies = append(tallies, t)
		}
		t.Total++
		if r.IsCorrect {
			t.Correct++
		}
	}
	out := make([]repository.UserTally, 0, len(tallies))
	for _, t := range tallies {
		t.Accuracy = float64(t.Correct) / float64(t.Total)
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy != out[j].Accuracy {
			return out[i].Accuracy > out[j].Accuracy
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].UserID < out[j].UserID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
