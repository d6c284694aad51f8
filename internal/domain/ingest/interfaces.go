package ingest

import (
	"context"

	"github.com/google/uuid"
)

// DocumentRepository persists document records.
type DocumentRepository interface {
	Create(ctx context.Context, doc Document) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status DocumentStatus, failureReason *string) error
	AttachStudySet(ctx context.Context, id uuid.UUID, studySetID uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (Document, bool, error)
	List(ctx context.Context) ([]Document, error)
}

// TextExtractor recognizes printed text in image or PDF bytes.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// GrammarCorrector fixes grammar and spelling in recognized text.
type GrammarCorrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// JobQueue schedules background processing.
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload any) error
}
