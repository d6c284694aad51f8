package studycards

import (
	"strings"
	"testing"
)

func TestChunkReconstructsSentences(t *testing.T) {
	text := "One sentence here. Another sentence follows! A third one? Short. Final thought ends it."
	chunks := Chunk(fakeSplitter{}, text, 40)

	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	joined := strings.Join(chunks, " ")
	for _, sent := range (fakeSplitter{}).Split(text) {
		if strings.Count(joined, sent) != 1 {
			t.Fatalf("sentence %q not present exactly once in %q", sent, joined)
		}
	}
}

func TestChunkRespectsMaxSize(t *testing.T) {
	text := "Alpha beta gamma delta. Epsilon zeta eta theta. Iota kappa lambda mu. Nu xi omicron pi."
	max := 50
	chunks := Chunk(fakeSplitter{}, text, max)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for _, chunk := range chunks {
		if len(chunk) > max {
			t.Fatalf("chunk exceeds max size %d: %q (%d chars)", max, chunk, len(chunk))
		}
	}
}

func TestChunkOversizedSentenceKeptWhole(t *testing.T) {
	long := strings.Repeat("word ", 200)
	long = strings.TrimSpace(long) + "."
	text := "Small lead. " + long + " Small tail."

	chunks := Chunk(fakeSplitter{}, text, 100)

	found := false
	for _, chunk := range chunks {
		if chunk == long {
			found = true
		}
	}
	if !found {
		t.Fatalf("oversized sentence was split across chunks: %v", chunks)
	}
}

func TestChunkExactBoundarySingleChunk(t *testing.T) {
	// a single 1000-char sentence fits the default chunk size exactly
	sentence := strings.Repeat("a", 999) + "."
	chunks := Chunk(fakeSplitter{}, sentence, 1000)

	if len(chunks) != 1 {
		t.Fatalf("expected one chunk, got %d", len(chunks))
	}
	if chunks[0] != sentence {
		t.Fatalf("sentence altered: %d chars", len(chunks[0]))
	}
}

func TestChunkEmptyInput(t *testing.T) {
	if chunks := Chunk(fakeSplitter{}, "   ", 100); chunks != nil {
		t.Fatalf("expected nil for blank input, got %v", chunks)
	}
}

func TestChunkDeterministic(t *testing.T) {
	text := "First one. Second one. Third one. Fourth one. Fifth one."
	first := Chunk(fakeSplitter{}, text, 25)
	second := Chunk(fakeSplitter{}, text, 25)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}
