// Package repo provides document repositories for the ingest workflow.
package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	domain "github.com/edubot/edubot-backend/internal/domain/ingest"
)

// MemoryDocumentRepository keeps documents in memory.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]domain.Document
}

// NewMemoryDocumentRepository constructs the repository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{docs: make(map[uuid.UUID]domain.Document)}
}

func (r *MemoryDocumentRepository) Create(_ context.Context, doc domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *MemoryDocumentRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.DocumentStatus, failureReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil
	}
	doc.Status = status
	doc.FailureReason = failureReason
	r.docs[id] = doc
	return nil
}

func (r *MemoryDocumentRepository) AttachStudySet(_ context.Context, id uuid.UUID, studySetID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil
	}
	doc.StudySetID = &studySetID
	r.docs[id] = doc
	return nil
}

func (r *MemoryDocumentRepository) Get(_ context.Context, id uuid.UUID) (domain.Document, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	return doc, ok, nil
}

func (r *MemoryDocumentRepository) List(_ context.Context) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ domain.DocumentRepository = (*MemoryDocumentRepository)(nil)
