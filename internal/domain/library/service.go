package library

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/edubot/edubot-backend/internal/domain/studycards"
	apperrors "github.com/edubot/edubot-backend/pkg/errors"
	"github.com/edubot/edubot-backend/pkg/util"
)

const defaultRelatedLimit = 5

// Config tunes the library service.
type Config struct {
	RelatedLimit int
}

func (c Config) withDefaults() Config {
	if c.RelatedLimit <= 0 {
		c.RelatedLimit = defaultRelatedLimit
	}
	return c
}

// Service saves and retrieves study sets.
type Service struct {
	cfg      Config
	repo     StudySetRepository
	embedder studycards.Embedder
	exporter Exporter
	logger   *slog.Logger
}

// NewService constructs the library service.
func NewService(cfg Config, repo StudySetRepository, embedder studycards.Embedder, exporter Exporter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg.withDefaults(),
		repo:     repo,
		embedder: embedder,
		exporter: exporter,
		logger:   logger.With("component", "library.service"),
	}
}

// Save persists generated materials under a title. The summary embedding
// is computed best effort: a failed embedding is logged and the set is
// stored without one, which only disables related-set lookups for it.
func (s *Service) Save(ctx context.Context, title string, materials studycards.Materials, sourceChars int) (StudySet, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled study set"
	}

	set := StudySet{
		ID:          uuid.New(),
		Title:       title,
		Summary:     materials.Summary,
		Flashcards:  materials.Flashcards,
		SourceChars: sourceChars,
		CreatedAt:   util.NowUTC(),
	}

	if s.embedder != nil && strings.TrimSpace(materials.Summary) != "" {
		vectors, err := s.embedder.Embed(ctx, []string{materials.Summary})
		if err != nil {
			s.logger.Warn("summary embedding failed, saving without", "error", err)
		} else if len(vectors) == 1 {
			set.SummaryEmbedding = vectors[0]
		}
	}

	if err := s.repo.Create(ctx, set); err != nil {
		return StudySet{}, apperrors.Wrap("storage_error", "save study set", err)
	}
	s.logger.Info("study set saved", "id", set.ID, "flashcards", len(set.Flashcards))
	return set, nil
}

// Get returns a stored study set.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (StudySet, error) {
	set, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return StudySet{}, apperrors.Wrap("storage_error", "load study set", err)
	}
	if !ok {
		return StudySet{}, apperrors.New("not_found", "study set not found", nil)
	}
	return set, nil
}

// List returns all stored study sets, newest first.
func (s *Service) List(ctx context.Context) ([]StudySet, error) {
	sets, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "list study sets", err)
	}
	return sets, nil
}

// Related finds the study sets most similar to the given one by summary
// embedding. A set saved without an embedding has no neighbors.
func (s *Service) Related(ctx context.Context, id uuid.UUID) ([]RelatedStudySet, error) {
	set, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(set.SummaryEmbedding) == 0 {
		return nil, nil
	}
	related, err := s.repo.FindSimilar(ctx, set.SummaryEmbedding, set.ID, s.cfg.RelatedLimit)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "find related study sets", err)
	}
	return related, nil
}

// Export renders a study set as a document for download.
func (s *Service) Export(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	set, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if s.exporter == nil {
		return nil, "", apperrors.New("export_error", "no exporter configured", nil)
	}
	data, err := s.exporter.StudyGuide(set)
	if err != nil {
		return nil, "", apperrors.Wrap("export_error", "render study guide", err)
	}
	return data, exportFilename(set.Title), nil
}

func exportFilename(title string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, title)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "study-guide"
	}
	return slug + ".docx"
}
