package studycards

import "context"

// SentenceSplitter segments text into ordered sentences. Implementations must
// cope with abbreviations and punctuation ambiguity; the pipeline treats the
// boundaries as authoritative.
type SentenceSplitter interface {
	Split(text string) []string
}

// ChunkSummarizer reduces one chunk to an abstractive summary bounded by
// maxLen/minLen (characters of the source drive the bounds, see Summarize).
type ChunkSummarizer interface {
	SummarizeChunk(ctx context.Context, text string, maxLen, minLen int) (string, error)
}

// Embedder produces fixed-dimension vectors for free form text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Answer is an extracted span with the model's confidence in [0,1].
type Answer struct {
	Text       string
	Confidence float64
}

// AnswerExtractor answers a question against a context passage.
type AnswerExtractor interface {
	Answer(ctx context.Context, question, context string) (Answer, error)
}
