// Package library provides study set repositories.
package library

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	domain "github.com/edubot/edubot-backend/internal/domain/library"
)

// MemoryStudySetRepository keeps study sets in memory. Useful for tests
// and local dev without Postgres.
type MemoryStudySetRepository struct {
	mu   sync.RWMutex
	sets map[uuid.UUID]domain.StudySet
}

// NewMemoryStudySetRepository constructs the repository.
func NewMemoryStudySetRepository() *MemoryStudySetRepository {
	return &MemoryStudySetRepository{sets: make(map[uuid.UUID]domain.StudySet)}
}

func (r *MemoryStudySetRepository) Create(_ context.Context, set domain.StudySet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.ID] = set
	return nil
}

func (r *MemoryStudySetRepository) Get(_ context.Context, id uuid.UUID) (domain.StudySet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[id]
	return set, ok, nil
}

func (r *MemoryStudySetRepository) List(_ context.Context) ([]domain.StudySet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StudySet, 0, len(r.sets))
	for _, set := range r.sets {
		out = append(out, set)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryStudySetRepository) FindSimilar(_ context.Context, embedding []float32, exclude uuid.UUID, limit int) ([]domain.RelatedStudySet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var related []domain.RelatedStudySet
	for _, set := range r.sets {
		if set.ID == exclude || len(set.SummaryEmbedding) == 0 {
			continue
		}
		dist := euclidean(embedding, set.SummaryEmbedding)
		related = append(related, domain.RelatedStudySet{
			Set:   set,
			Score: 1.0 / (1.0 + dist),
		})
	}
	sort.Slice(related, func(i, j int) bool { return related[i].Score > related[j].Score })
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

var _ domain.StudySetRepository = (*MemoryStudySetRepository)(nil)

func euclidean(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
