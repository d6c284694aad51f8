package studycards

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/edubot/edubot-backend/pkg/errors"
	"github.com/edubot/edubot-backend/pkg/metrics"
)

// Service runs the flashcard generation pipeline. All model capabilities are
// injected once at construction and reused across requests; the service holds
// no per-request state, so concurrent calls are independent.
type Service struct {
	cfg        Config
	splitter   SentenceSplitter
	summarizer ChunkSummarizer
	dedup      *Deduplicator
	qa         AnswerExtractor
	logger     *slog.Logger
}

// NewService constructs the pipeline service.
func NewService(cfg Config, splitter SentenceSplitter, summarizer ChunkSummarizer, embedder Embedder, qa AnswerExtractor, logger *slog.Logger) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		cfg:        cfg,
		splitter:   splitter,
		summarizer: summarizer,
		dedup:      NewDeduplicator(embedder, cfg.SimilarityThreshold),
		qa:         qa,
		logger:     logger.With("component", "studycards.service"),
	}
}

// Generate turns raw text into a summary plus deduplicated flashcards. The
// summary is built from the normalized text; answer extraction always runs
// against the original, uncleaned input to preserve source fidelity.
// Summarization and embedding failures abort the request; per-question answer
// failures only drop that question.
func (s *Service) Generate(ctx context.Context, req Request) (Materials, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Materials{}, apperrors.Wrap("invalid_input", "text cannot be empty", nil)
	}
	start := time.Now()

	summary, chunkCount, err := s.summarizeChunks(ctx, req.Text)
	if err != nil {
		return Materials{}, err
	}

	keywords := ExtractKeywords(summary, s.cfg.MaxKeywords)
	questions := KeywordQuestions(keywords)

	if req.UseTaxonomy {
		sentences, err := s.summarySentences(ctx, summary)
		if err != nil {
			return Materials{}, err
		}
		for _, sent := range sentences {
			questions = append(questions, TaxonomyQuestions(sent)...)
		}
	}

	flashcards := s.assemble(ctx, questions, req.Text)

	stats := metrics.PipelineStats{
		Chunks:         chunkCount,
		QuestionsAsked: len(questions),
		FlashcardsKept: len(flashcards),
		DurationMs:     time.Since(start).Milliseconds(),
	}
	s.logger.Info("pipeline complete", "chunks", stats.Chunks, "questions", stats.QuestionsAsked, "flashcards", stats.FlashcardsKept, "duration_ms", stats.DurationMs)

	return Materials{Summary: summary, Flashcards: flashcards, Stats: stats}, nil
}

// summarySentences splits the summary and removes near-duplicates so taxonomy
// questions do not repeat the same content.
func (s *Service) summarySentences(ctx context.Context, summary string) ([]string, error) {
	var sentences []string
	for _, sent := range s.splitter.Split(summary) {
		sent = strings.TrimSpace(sent)
		if len(sent) <= s.cfg.MinSentenceChars {
			continue
		}
		sentences = append(sentences, sent)
	}
	return s.dedup.FilterSentences(ctx, sentences)
}

// assemble asks each question against the source text and keeps the answer
// only when confidence clears the threshold strictly and the trimmed answer
// is non-empty. Extractor failures are isolated per question.
func (s *Service) assemble(ctx context.Context, questions []Question, source string) []Flashcard {
	flashcards := make([]Flashcard, 0, len(questions))
	for _, q := range questions {
		answer, err := s.qa.Answer(ctx, q.Text, source)
		if err != nil {
			s.logger.Warn("answer extraction failed", "strategy", q.Strategy, "question", q.Text, "error", err)
			continue
		}
		text := strings.TrimSpace(answer.Text)
		if answer.Confidence <= s.cfg.ConfidenceThreshold || text == "" {
			continue
		}
		flashcards = append(flashcards, Flashcard{Question: q.Text, Answer: text})
	}
	return flashcards
}
