package studycards

import (
	"context"
	"errors"
	"testing"
)

func TestIsDuplicateEmptyAcceptedNeverDuplicate(t *testing.T) {
	// embedder that always fails: proves the empty case skips embedding
	dedup := NewDeduplicator(vectorEmbedder{err: errors.New("down")}, 0.8)

	dup, err := dedup.IsDuplicate(context.Background(), "anything", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dup {
		t.Fatal("first sentence must always be accepted")
	}
}

func TestIsDuplicateThreshold(t *testing.T) {
	embedder := vectorEmbedder{vectors: map[string][]float32{
		"the sky is blue":  {1, 0, 0},
		"the sky was blue": {0.99, 0.1, 0},
		"water is wet":     {0, 1, 0},
	}}
	dedup := NewDeduplicator(embedder, 0.8)

	dup, err := dedup.IsDuplicate(context.Background(), "the sky was blue", []string{"the sky is blue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dup {
		t.Fatal("near-identical sentence should be a duplicate")
	}

	dup, err = dedup.IsDuplicate(context.Background(), "water is wet", []string{"the sky is blue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dup {
		t.Fatal("orthogonal sentence should not be a duplicate")
	}
}

func TestFilterSentencesOnline(t *testing.T) {
	embedder := vectorEmbedder{vectors: map[string][]float32{
		"a": {1, 0, 0},
		"b": {0.95, 0.2, 0}, // duplicate of a
		"c": {0, 1, 0},
		"d": {0.1, 0.97, 0}, // duplicate of c, not of a
	}}
	dedup := NewDeduplicator(embedder, 0.8)

	kept, err := dedup.FilterSentences(context.Background(), []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept) != 2 || kept[0] != "a" || kept[1] != "c" {
		t.Fatalf("expected [a c], got %v", kept)
	}
}

func TestFilterSentencesEmbeddingFailureIsFatal(t *testing.T) {
	dedup := NewDeduplicator(vectorEmbedder{err: errors.New("down")}, 0.8)

	_, err := dedup.FilterSentences(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Fatal("expected embedding failure to propagate")
	}
}
