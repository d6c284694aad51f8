package studycards

import (
	"context"
	"strings"

	apperrors "github.com/edubot/edubot-backend/pkg/errors"
)

// summaryBounds computes the adaptive length bounds for one chunk:
// maxLen = clamp(len/5, 30, 150), minLen = min(40, maxLen/2).
func summaryBounds(chunkLen int) (maxLen, minLen int) {
	maxLen = chunkLen / 5
	if maxLen < 30 {
		maxLen = 30
	}
	if maxLen > 150 {
		maxLen = 150
	}
	minLen = maxLen / 2
	if minLen > 40 {
		minLen = 40
	}
	return maxLen, minLen
}

// Summarize normalizes the text, chunks it, summarizes each chunk with
// adaptive bounds, and joins the partial summaries with single spaces in
// chunk order. A failing chunk aborts the whole summary; no degraded partial
// summary is fabricated.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	summary, _, err := s.summarizeChunks(ctx, text)
	return summary, err
}

func (s *Service) summarizeChunks(ctx context.Context, text string) (string, int, error) {
	normalized := Normalize(text)
	if normalized == "" {
		return "", 0, apperrors.Wrap("invalid_input", "text cannot be empty", nil)
	}

	chunks := Chunk(s.splitter, normalized, s.cfg.MaxChunkChars)
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		maxLen, minLen := summaryBounds(len(chunk))
		part, err := s.summarizer.SummarizeChunk(ctx, chunk, maxLen, minLen)
		if err != nil {
			s.logger.Error("chunk summarization failed", "chunk", i, "chunks", len(chunks), "error", err)
			return "", 0, apperrors.Wrap("summarizer_error", "chunk summarization failed", err)
		}
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " "), len(chunks), nil
}
