package summarizer

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/edubot/edubot-backend/internal/domain/studycards"
	"github.com/edubot/edubot-backend/internal/infra/llm/hf"
)

// HFSummarizer backs the chunk summarizer port with a hosted abstractive
// summarization model (bart-large-cnn by default).
type HFSummarizer struct {
	client *hf.Client
	model  string
}

// NewHFSummarizer constructs the adapter.
func NewHFSummarizer(client *hf.Client, model string) *HFSummarizer {
	return &HFSummarizer{client: client, model: strings.TrimSpace(model)}
}

// SummarizeChunk forwards the chunk with its adaptive bounds.
func (s *HFSummarizer) SummarizeChunk(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	summary, err := s.client.Summarize(ctx, s.model, text, maxLen, minLen)
	if err != nil {
		return "", fmt.Errorf("summarize chunk: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

var _ domain.ChunkSummarizer = (*HFSummarizer)(nil)
