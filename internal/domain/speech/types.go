// Package speech wraps speech-to-text and text-to-speech for study
// material, producing narration audio with timed subtitles.
package speech

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Synthesizer converts text to audio. Format is the container name, e.g.
// "mp3".
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (audio []byte, format string, err error)
}

// Transcription is the result of a speech-to-text request.
type Transcription struct {
	Text       string     `json:"text"`
	StudySetID *uuid.UUID `json:"study_set_id,omitempty"`
}

// Narration is synthesized audio stored alongside its subtitles.
type Narration struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	AudioKey    string        `json:"audio_key"`
	SubtitleKey string        `json:"subtitle_key"`
	Format      string        `json:"format"`
	Duration    time.Duration `json:"-"`
	DurationMs  int64         `json:"duration_ms"`
	CreatedAt   time.Time     `json:"created_at"`
}
