// Package library stores generated study sets and finds related ones by
// summary similarity.
package library

import (
	"time"

	"github.com/google/uuid"

	"github.com/edubot/edubot-backend/internal/domain/studycards"
)

// StudySet is a persisted unit of generated study materials.
type StudySet struct {
	ID               uuid.UUID              `json:"id"`
	Title            string                 `json:"title"`
	Summary          string                 `json:"summary"`
	Flashcards       []studycards.Flashcard `json:"flashcards"`
	SourceChars      int                    `json:"source_chars"`
	SummaryEmbedding []float32              `json:"-"`
	CreatedAt        time.Time              `json:"created_at"`
}

// RelatedStudySet pairs a study set with its similarity score against a
// reference set.
type RelatedStudySet struct {
	Set   StudySet `json:"set"`
	Score float64  `json:"score"`
}
