package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/arlearn/assessment-api/internal/domain/repository"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

const leaderboardKeyPrefix = "leaderboard:"

// LeaderboardEntry is one ranked learner
type LeaderboardEntry struct {
	Name             string  `json:"name"`
	Accuracy         float64 `json:"accuracy"` // percent, 2 decimals
	TotalAssessments int64   `json:"total_assessments"`
}

// LeaderboardService ranks learners by accuracy across the whole log
type LeaderboardService struct {
	resultRepo repository.ResultRepository
	userRepo   repository.UserRepository
	cacheRepo  repository.CacheRepository // optional
	cacheTTL   time.Duration
}

// NewLeaderboardService creates the ranking service. cacheRepo may be nil.
func NewLeaderboardService(
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) (*LeaderboardService, error) {
	if resultRepo == nil {
		return nil, fmt.Errorf("ResultRepository is required for LeaderboardService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for LeaderboardService")
	}
	return &LeaderboardService{
		resultRepo: resultRepo,
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		cacheTTL:   cacheTTL,
	}, nil
}

// GetLeaderboard returns at most limit entries, best first.
// Learners whose account no longer exists are dropped, so fewer than limit entries may come back.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 {
		return nil, apperrors.New(apperrors.ErrValidation, "limit must be positive")
	}

	cacheKey := fmt.Sprintf("%s%d", leaderboardKeyPrefix, limit)
	if s.cacheRepo != nil && s.cacheTTL > 0 {
		var cached []LeaderboardEntry
		err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[LeaderboardService] WARNING: cache read failed for %s: %v", cacheKey, err)
		}
	}

	tallies, err := s.resultRepo.GetUserTallies(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leaderboard: %w", err)
	}
	rankTallies(tallies)
	if len(tallies) > limit {
		tallies = tallies[:limit]
	}

	ids := make([]string, len(tallies))
	for i, t := range tallies {
		ids[i] = t.UserID
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard users: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(tallies))
	for _, t := range tallies {
		user, ok := users[t.UserID]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Name:             user.Name,
			Accuracy:         roundPercent(tallyAccuracy(t)),
			TotalAssessments: t.Total,
		})
	}

	if s.cacheRepo != nil && s.cacheTTL > 0 {
		if err := s.cacheRepo.SetJSON(ctx, cacheKey, entries, s.cacheTTL); err != nil {
			log.Printf("[LeaderboardService] WARNING: cache write failed for %s: %v", cacheKey, err)
		}
	}
	return entries, nil
}

// rankTallies orders by accuracy desc, attempts desc, user ID asc.
func rankTallies(tallies []repository.UserTally) {
	sort.SliceStable(tallies, func(i, j int) bool {
		ai, aj := tallyAccuracy(tallies[i]), tallyAccuracy(tallies[j])
		if ai != aj {
			return ai > aj
		}
		if tallies[i].Total != tallies[j].Total {
			return tallies[i].Total > tallies[j].Total
		}
		return tallies[i].UserID < tallies[j].UserID
	})
}

// tallyAccuracy is the correct/total ratio computed by storage.
func tallyAccuracy(t repository.UserTally) float64 {
	return t.Accuracy
}

// roundPercent converts a 0..1 ratio to a percentage rounded to 2 decimals.
func roundPercent(ratio float64) float64 {
	return math.Round(ratio*100*100) / 100
}
