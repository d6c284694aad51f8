package library

import (
	"context"

	"github.com/google/uuid"
)

// StudySetRepository persists study sets.
type StudySetRepository interface {
	Create(ctx context.Context, set StudySet) error
	Get(ctx context.Context, id uuid.UUID) (StudySet, bool, error)
	List(ctx context.Context) ([]StudySet, error)
	FindSimilar(ctx context.Context, embedding []float32, exclude uuid.UUID, limit int) ([]RelatedStudySet, error)
}

// Exporter renders a study set into a downloadable document.
type Exporter interface {
	StudyGuide(set StudySet) ([]byte, error)
}
