package studycards

import (
	"context"
	"math"

	apperrors "github.com/edubot/edubot-backend/pkg/errors"
)

// Deduplicator suppresses near-duplicate sentences by embedding similarity.
type Deduplicator struct {
	embedder  Embedder
	threshold float64
}

// NewDeduplicator constructs a deduplicator with the given cosine threshold.
func NewDeduplicator(embedder Embedder, threshold float64) *Deduplicator {
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	return &Deduplicator{embedder: embedder, threshold: threshold}
}

// IsDuplicate reports whether candidate is closer than the threshold to any
// accepted sentence. An empty accepted set never yields a duplicate and skips
// the embedding call entirely.
func (d *Deduplicator) IsDuplicate(ctx context.Context, candidate string, accepted []string) (bool, error) {
	if len(accepted) == 0 {
		return false, nil
	}
	texts := make([]string, 0, len(accepted)+1)
	texts = append(texts, candidate)
	texts = append(texts, accepted...)
	vectors, err := d.embedder.Embed(ctx, texts)
	if err != nil {
		return false, apperrors.Wrap("embedding_error", "failed to embed sentences", err)
	}
	if len(vectors) != len(texts) {
		return false, apperrors.Wrap("embedding_error", "embedding count mismatch", nil)
	}
	candidateVec := vectors[0]
	for _, vec := range vectors[1:] {
		if cosineSimilarity(candidateVec, vec) > d.threshold {
			return true, nil
		}
	}
	return false, nil
}

// FilterSentences runs online deduplication: sentences are visited in order
// and kept only when not a duplicate of a previously kept sentence; the
// comparison set grows as sentences are accepted.
func (d *Deduplicator) FilterSentences(ctx context.Context, sentences []string) ([]string, error) {
	var accepted []string
	for _, sent := range sentences {
		dup, err := d.IsDuplicate(ctx, sent, accepted)
		if err != nil {
			return nil, err
		}
		if dup {
			continue
		}
		accepted = append(accepted, sent)
	}
	return accepted, nil
}

func cosineSimilarity(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < length; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
