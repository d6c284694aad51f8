package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/edubot/edubot-backend/internal/domain/blob"
	"github.com/edubot/edubot-backend/internal/domain/library"
	"github.com/edubot/edubot-backend/internal/domain/studycards"
	apperrors "github.com/edubot/edubot-backend/pkg/errors"
	"github.com/edubot/edubot-backend/pkg/util"
)

// Generator produces study materials from transcribed text.
type Generator interface {
	Generate(ctx context.Context, req studycards.Request) (studycards.Materials, error)
}

// Librarian stores generated materials as a study set.
type Librarian interface {
	Save(ctx context.Context, title string, materials studycards.Materials, sourceChars int) (library.StudySet, error)
}

// Config tunes narration output.
type Config struct {
	WordsPerMinute int
}

func (c Config) withDefaults() Config {
	if c.WordsPerMinute <= 0 {
		c.WordsPerMinute = 160
	}
	return c
}

// Service handles transcription and narration requests.
type Service struct {
	cfg         Config
	transcriber Transcriber
	synthesizer Synthesizer
	splitter    studycards.SentenceSplitter
	storage     blob.ObjectStorage
	generator   Generator
	librarian   Librarian
	logger      *slog.Logger
}

// NewService constructs the speech service.
func NewService(cfg Config, transcriber Transcriber, synthesizer Synthesizer, splitter studycards.SentenceSplitter, storage blob.ObjectStorage, generator Generator, librarian Librarian, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:         cfg.withDefaults(),
		transcriber: transcriber,
		synthesizer: synthesizer,
		splitter:    splitter,
		storage:     storage,
		generator:   generator,
		librarian:   librarian,
		logger:      logger.With("component", "speech.service"),
	}
}

// TranscribeRequest carries uploaded audio.
type TranscribeRequest struct {
	Filename         string
	Audio            []byte
	GenerateStudySet bool
	UseTaxonomy      bool
	Title            string
}

// Transcribe converts audio to text and optionally runs the study card
// pipeline over the transcript.
func (s *Service) Transcribe(ctx context.Context, req TranscribeRequest) (Transcription, error) {
	if len(req.Audio) == 0 {
		return Transcription{}, apperrors.New("invalid_input", "audio cannot be empty", nil)
	}
	if s.transcriber == nil {
		return Transcription{}, apperrors.New("speech_error", "no transcriber configured", nil)
	}

	text, err := s.transcriber.Transcribe(ctx, req.Audio, req.Filename)
	if err != nil {
		return Transcription{}, apperrors.Wrap("speech_error", "transcription failed", err)
	}
	out := Transcription{Text: text}

	if req.GenerateStudySet && s.generator != nil && s.librarian != nil {
		materials, err := s.generator.Generate(ctx, studycards.Request{Text: text, UseTaxonomy: req.UseTaxonomy})
		if err != nil {
			return Transcription{}, err
		}
		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = req.Filename
		}
		set, err := s.librarian.Save(ctx, title, materials, len(text))
		if err != nil {
			return Transcription{}, err
		}
		out.StudySetID = &set.ID
	}
	return out, nil
}

// NarrateRequest carries text to synthesize.
type NarrateRequest struct {
	Title string
	Text  string
}

// Narrate synthesizes audio for the text, builds SRT subtitles from its
// sentences, and stores both.
func (s *Service) Narrate(ctx context.Context, req NarrateRequest) (Narration, error) {
	text := studycards.Normalize(req.Text)
	if text == "" {
		return Narration{}, apperrors.New("invalid_input", "text cannot be empty", nil)
	}
	if s.synthesizer == nil {
		return Narration{}, apperrors.New("speech_error", "no synthesizer configured", nil)
	}

	audio, format, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return Narration{}, apperrors.Wrap("speech_error", "synthesis failed", err)
	}

	sentences := s.splitter.Split(text)
	if len(sentences) == 0 {
		sentences = []string{text}
	}
	srt, total := BuildSRT(sentences, s.cfg.WordsPerMinute)

	narration := Narration{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		Format:    format,
		Duration:  total,
		CreatedAt: util.NowUTC(),
	}
	narration.DurationMs = total.Milliseconds()
	if narration.Title == "" {
		narration.Title = "narration"
	}

	audioKey := fmt.Sprintf("narrations/%s/audio.%s", narration.ID, format)
	if _, err := s.storage.Put(ctx, audioKey, audio, audioMime(format)); err != nil {
		return Narration{}, apperrors.Wrap("storage_error", "store narration audio", err)
	}
	narration.AudioKey = audioKey

	subtitleKey := fmt.Sprintf("narrations/%s/subtitles.srt", narration.ID)
	if _, err := s.storage.Put(ctx, subtitleKey, []byte(srt), "application/x-subrip"); err != nil {
		return Narration{}, apperrors.Wrap("storage_error", "store narration subtitles", err)
	}
	narration.SubtitleKey = subtitleKey

	s.logger.Info("narration stored", "id", narration.ID, "cues", len(sentences), "duration_ms", narration.DurationMs)
	return narration, nil
}

func audioMime(format string) string {
	switch format {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "opus":
		return "audio/opus"
	default:
		return "application/octet-stream"
	}
}
