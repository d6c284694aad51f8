package summarizer

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/edubot/edubot-backend/internal/domain/studycards"
	"github.com/edubot/edubot-backend/internal/infra/llm/openai"
)

// OpenAISummarizer is the chat-completion alternative to the hosted
// summarization pipeline. The model receives the length bounds as prompt
// constraints rather than decoder parameters.
type OpenAISummarizer struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAISummarizer constructs the adapter.
func NewOpenAISummarizer(client *openai.Client, model string, temperature float32) *OpenAISummarizer {
	return &OpenAISummarizer{client: client, model: strings.TrimSpace(model), temperature: temperature}
}

// SummarizeChunk prompts the chat model for a bounded abstractive summary.
func (s *OpenAISummarizer) SummarizeChunk(ctx context.Context, text string, maxLen, minLen int) (string, error) {
	system := fmt.Sprintf(
		"You summarize study material. Produce an abstractive summary of the user's text between %d and %d words. Respond with the summary only.",
		minLen, maxLen,
	)
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		Messages: []openai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize chunk: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarize chunk: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ domain.ChunkSummarizer = (*OpenAISummarizer)(nil)
