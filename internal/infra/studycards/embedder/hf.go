package embedder

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/edubot/edubot-backend/internal/domain/studycards"
	"github.com/edubot/edubot-backend/internal/infra/llm/hf"
)

// HFEmbedder encodes sentences with a hosted sentence-transformers model.
type HFEmbedder struct {
	client *hf.Client
	model  string
}

// NewHFEmbedder constructs the adapter.
func NewHFEmbedder(client *hf.Client, model string) *HFEmbedder {
	return &HFEmbedder{client: client, model: strings.TrimSpace(model)}
}

// Embed returns one vector per input text.
func (e *HFEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.client.Embed(ctx, e.model, texts)
	if err != nil {
		return nil, fmt.Errorf("embed texts: %w", err)
	}
	return vectors, nil
}

var _ domain.Embedder = (*HFEmbedder)(nil)
