package studycards

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// fakeSplitter approximates sentence boundaries on terminal punctuation,
// mirroring the behavior the pipeline expects from the real tokenizer.
type fakeSplitter struct{}

var sentenceEnd = regexp.MustCompile(`(?s)(.*?[.!?])(?:\s+|$)`)

func (fakeSplitter) Split(text string) []string {
	var out []string
	rest := text
	for {
		loc := sentenceEnd.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		out = append(out, strings.TrimSpace(rest[loc[2]:loc[3]]))
		rest = rest[loc[1]:]
	}
	if trimmed := strings.TrimSpace(rest); trimmed != "" {
		out = append(out, trimmed)
	}
	return out
}

// echoSummarizer returns each chunk verbatim.
type echoSummarizer struct{}

func (echoSummarizer) SummarizeChunk(_ context.Context, text string, _, _ int) (string, error) {
	return text, nil
}

type failingSummarizer struct{}

func (failingSummarizer) SummarizeChunk(context.Context, string, int, int) (string, error) {
	return "", errors.New("model unavailable")
}

// vectorEmbedder returns a configured vector per text, defaulting to an
// orthogonal unit vector when unset.
type vectorEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (e vectorEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if vec, ok := e.vectors[text]; ok {
			out[i] = vec
			continue
		}
		vec := make([]float32, len(texts))
		vec[i] = 1
		out[i] = vec
	}
	return out, nil
}

// scriptedExtractor answers by substring match on the question.
type scriptedExtractor struct {
	answers map[string]Answer // keyed by substring of the question
	err     error
}

func (e scriptedExtractor) Answer(_ context.Context, question, _ string) (Answer, error) {
	if e.err != nil {
		return Answer{}, e.err
	}
	for key, ans := range e.answers {
		if strings.Contains(question, key) {
			return ans, nil
		}
	}
	return Answer{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(summarizer ChunkSummarizer, embedder Embedder, qa AnswerExtractor) *Service {
	return NewService(Config{}, fakeSplitter{}, summarizer, embedder, qa, testLogger())
}
