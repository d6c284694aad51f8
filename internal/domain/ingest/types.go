// Package ingest turns uploaded documents into study sets. It stores the
// raw blob, recognizes text where needed, cleans it up, and hands it to
// the study card pipeline.
package ingest

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus tracks asynchronous processing state.
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Document records an uploaded source and its processing outcome.
type Document struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Filename      string         `json:"filename"`
	MimeType      string         `json:"mime_type"`
	StorageKey    string         `json:"-"`
	Status        DocumentStatus `json:"status"`
	FailureReason *string        `json:"failure_reason,omitempty"`
	StudySetID    *uuid.UUID     `json:"study_set_id,omitempty"`
	UseTaxonomy   bool           `json:"use_taxonomy"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
