package studycards

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenerateKeywordFlashcard(t *testing.T) {
	qa := scriptedExtractor{answers: map[string]Answer{
		"sky": {Text: "blue", Confidence: 0.9},
	}}
	svc := newTestService(echoSummarizer{}, vectorEmbedder{}, qa)

	materials, err := svc.Generate(context.Background(), Request{
		Text: "The sky is blue. Water boils at 100 degrees Celsius at sea level.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if materials.Summary == "" {
		t.Fatal("expected a summary")
	}

	found := false
	for _, card := range materials.Flashcards {
		if strings.Contains(card.Question, "sky") && card.Answer == "blue" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a sky flashcard answered with blue, got %v", materials.Flashcards)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	svc := newTestService(echoSummarizer{}, vectorEmbedder{}, scriptedExtractor{})

	_, err := svc.Generate(context.Background(), Request{Text: "   "})
	if err == nil {
		t.Fatal("expected invalid input error")
	}
}

func TestGenerateSummarizerFailureAborts(t *testing.T) {
	svc := newTestService(failingSummarizer{}, vectorEmbedder{}, scriptedExtractor{})

	_, err := svc.Generate(context.Background(), Request{Text: "Some valid text here."})
	if err == nil {
		t.Fatal("expected summarizer failure to abort the request")
	}
}

func TestGenerateQAFailuresYieldEmptyFlashcards(t *testing.T) {
	qa := scriptedExtractor{err: errors.New("qa backend down")}
	svc := newTestService(echoSummarizer{}, vectorEmbedder{}, qa)

	materials, err := svc.Generate(context.Background(), Request{
		Text:        "Photosynthesis converts sunlight into chemical energy inside chloroplasts.",
		UseTaxonomy: true,
	})
	if err != nil {
		t.Fatalf("per-question failures must not abort: %v", err)
	}
	if materials.Summary == "" {
		t.Fatal("summary should still be returned")
	}
	if len(materials.Flashcards) != 0 {
		t.Fatalf("expected no flashcards, got %v", materials.Flashcards)
	}
}

func TestGenerateFiltersLowConfidenceAndBlankAnswers(t *testing.T) {
	qa := scriptedExtractor{answers: map[string]Answer{
		"gravity": {Text: "a force", Confidence: 0.3},  // not strictly above threshold
		"planets": {Text: "   ", Confidence: 0.9},      // blank answer
		"orbits":  {Text: "ellipses", Confidence: 0.8}, // kept
	}}
	svc := newTestService(echoSummarizer{}, vectorEmbedder{}, qa)

	materials, err := svc.Generate(context.Background(), Request{
		Text: "Gravity shapes orbits. Planets follow orbits. Gravity binds planets.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, card := range materials.Flashcards {
		if card.Answer != "ellipses" {
			t.Fatalf("low-confidence or blank answer leaked through: %+v", card)
		}
	}
	if len(materials.Flashcards) == 0 {
		t.Fatal("expected the high-confidence card to be kept")
	}
}

type countingExtractor struct {
	taxonomy int
	keyword  int
}

func (e *countingExtractor) Answer(_ context.Context, question, _ string) (Answer, error) {
	if strings.Contains(question, "infer") || strings.Contains(question, "explain:") || strings.Contains(question, "evaluate") {
		e.taxonomy++
	} else {
		e.keyword++
	}
	return Answer{Text: "answer", Confidence: 0.9}, nil
}

func TestGenerateDeduplicatesTaxonomySentences(t *testing.T) {
	first := "Mitochondria produce energy for the cell."
	second := "Mitochondria generate energy for the cell."
	embedder := vectorEmbedder{vectors: map[string][]float32{
		first:  {1, 0},
		second: {0.98, 0.05},
	}}
	qa := &countingExtractor{}
	svc := newTestService(echoSummarizer{}, embedder, qa)

	materials, err := svc.Generate(context.Background(), Request{
		Text:        first + " " + second,
		UseTaxonomy: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qa.taxonomy != 3 {
		t.Fatalf("expected 3 taxonomy questions after dedup, got %d", qa.taxonomy)
	}
	if materials.Stats.QuestionsAsked != qa.taxonomy+qa.keyword {
		t.Fatalf("stats mismatch: %+v vs %d+%d", materials.Stats, qa.taxonomy, qa.keyword)
	}
}

func TestGenerateKeywordCardsPrecedeTaxonomyCards(t *testing.T) {
	qa := scriptedExtractor{answers: map[string]Answer{
		"": {Text: "answer", Confidence: 0.9}, // empty key matches every question
	}}
	svc := newTestService(echoSummarizer{}, vectorEmbedder{vectors: map[string][]float32{}}, qa)

	materials, err := svc.Generate(context.Background(), Request{
		Text:        "Volcanoes erupt molten rock. Earthquakes shake tectonic plates.",
		UseTaxonomy: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sawTaxonomy := false
	for _, card := range materials.Flashcards {
		isTaxonomy := strings.Contains(card.Question, "infer") ||
			strings.Contains(card.Question, "explain:") ||
			strings.Contains(card.Question, "evaluate")
		if isTaxonomy {
			sawTaxonomy = true
		} else if sawTaxonomy {
			t.Fatalf("keyword card found after taxonomy cards: %v", materials.Flashcards)
		}
	}
	if !sawTaxonomy {
		t.Fatal("expected taxonomy cards in output")
	}
}
