package qa

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/edubot/edubot-backend/internal/domain/studycards"
	"github.com/edubot/edubot-backend/internal/infra/llm/hf"
)

// HFAnswerExtractor answers questions with a hosted extractive QA model
// (roberta-base-squad2 by default), which returns a span and a score in [0,1].
type HFAnswerExtractor struct {
	client *hf.Client
	model  string
}

// NewHFAnswerExtractor constructs the adapter.
func NewHFAnswerExtractor(client *hf.Client, model string) *HFAnswerExtractor {
	return &HFAnswerExtractor{client: client, model: strings.TrimSpace(model)}
}

// Answer runs extractive QA against the context passage.
func (e *HFAnswerExtractor) Answer(ctx context.Context, question, context_ string) (domain.Answer, error) {
	result, err := e.client.Answer(ctx, e.model, question, context_)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("answer question: %w", err)
	}
	return domain.Answer{Text: result.Answer, Confidence: result.Score}, nil
}

var _ domain.AnswerExtractor = (*HFAnswerExtractor)(nil)
