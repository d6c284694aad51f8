package embedder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domain "github.com/edubot/edubot-backend/internal/domain/studycards"
	"github.com/edubot/edubot-backend/internal/infra/llm/openai"
	"github.com/edubot/edubot-backend/pkg/tokens"
)

// OpenAIEmbedder calls an OpenAI-compatible embeddings API, batching inputs
// under the provider's token cap.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIEmbedder constructs the adapter.
func NewOpenAIEmbedder(client *openai.Client, model string, logger *slog.Logger) *OpenAIEmbedder {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIEmbedder{
		client: client,
		model:  strings.TrimSpace(model),
		logger: logger.With("component", "studycards.embedder.openai"),
	}
}

// Embed requests embeddings for the given texts.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	var (
		out            [][]float32
		batch          []string
		batchTokens    int
		maxBatchTokens = 200_000 // stay well below the provider's 300k cap
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		resp, err := e.client.CreateEmbedding(ctx, openai.EmbeddingRequest{
			Model: e.model,
			Input: batch,
		})
		if err != nil {
			return fmt.Errorf("create embedding: %w", err)
		}
		for _, item := range resp.Data {
			vec := make([]float32, len(item.Embedding))
			copy(vec, item.Embedding)
			out = append(out, vec)
		}
		if len(resp.Data) != len(batch) {
			e.logger.Warn("embedding result count mismatch", "expected", len(batch), "got", len(resp.Data))
		}
		batch = batch[:0]
		batchTokens = 0
		return nil
	}

	for _, text := range texts {
		count := tokens.Count(text)
		if count > maxBatchTokens {
			return nil, fmt.Errorf("text too large for embedding request: tokens=%d", count)
		}
		if batchTokens+count > maxBatchTokens && len(batch) > 0 {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		batch = append(batch, text)
		batchTokens += count
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.Embedder = (*OpenAIEmbedder)(nil)
