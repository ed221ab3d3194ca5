package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/arlearn/assessment-api/internal/domain/repository"
	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

const (
	subjectNameKeyPrefix = "subject_name:"
	fallbackNameLen      = 8
)

// SubjectNameResolver maps subject IDs to display names.
// Resolved names are shared across requests through the cache; unknown subjects fall back to an ID prefix.
type SubjectNameResolver struct {
	subjectRepo repository.SubjectRepository
	cacheRepo   repository.CacheRepository // optional
	ttl         time.Duration
}

// NewSubjectNameResolver creates a resolver. cacheRepo may be nil.
func NewSubjectNameResolver(subjectRepo repository.SubjectRepository, cacheRepo repository.CacheRepository, ttl time.Duration) *SubjectNameResolver {
	return &SubjectNameResolver{subjectRepo: subjectRepo, cacheRepo: cacheRepo, ttl: ttl}
}

// Resolve looks every distinct ID up once and returns id -> display name.
func (r *SubjectNameResolver) Resolve(ctx context.Context, subjectIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(subjectIDs))
	for _, id := range subjectIDs {
		if _, done := names[id]; done {
			continue
		}
		name, err := r.resolveOne(ctx, id)
		if err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, nil
}

func (r *SubjectNameResolver) resolveOne(ctx context.Context, id string) (string, error) {
	key := subjectNameKeyPrefix + id
	if r.cacheRepo != nil {
		name, err := r.cacheRepo.Get(ctx, key)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[SubjectNameResolver] WARNING: cache read failed for %s: %v", id, err)
		}
	}

	subject, err := r.subjectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fallbackSubjectName(id), nil
		}
		return "", fmt.Errorf("failed to load subject %s: %w", id, err)
	}

	if r.cacheRepo != nil {
		if err := r.cacheRepo.Set(ctx, key, subject.Name, r.ttl); err != nil {
			log.Printf("[SubjectNameResolver] WARNING: cache write failed for %s: %v", id, err)
		}
	}
	return subject.Name, nil
}

func fallbackSubjectName(id string) string {
	if len(id) <= fallbackNameLen {
		return id
	}
	return id[:fallbackNameLen]
}
