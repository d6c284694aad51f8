package studycards

import "testing"

func TestKeywordQuestionsCycleTemplates(t *testing.T) {
	keywords := []string{"osmosis", "mitosis", "glucose", "enzyme", "protein"}
	questions := KeywordQuestions(keywords)

	if len(questions) != len(keywords) {
		t.Fatalf("expected one question per keyword, got %d", len(questions))
	}
	expected := []string{
		"What is osmosis?",
		"Explain the concept of mitosis.",
		"Why is glucose important?",
		"How does enzyme work?",
		"What is protein?", // fifth keyword wraps back to the first template
	}
	for i, q := range questions {
		if q.Text != expected[i] {
			t.Fatalf("question %d: expected %q got %q", i, expected[i], q.Text)
		}
		if q.Strategy != StrategyKeyword || q.Source != keywords[i] {
			t.Fatalf("question %d has wrong provenance: %+v", i, q)
		}
	}
}

func TestTaxonomyQuestionsQuoteSentence(t *testing.T) {
	sentence := "Water boils at 100 degrees Celsius."
	questions := TaxonomyQuestions(sentence)

	if len(questions) != 3 {
		t.Fatalf("expected 3 taxonomy questions, got %d", len(questions))
	}
	expected := []string{
		"What can you infer from: 'Water boils at 100 degrees Celsius.'?",
		"Can you explain: 'Water boils at 100 degrees Celsius.'?",
		"How would you evaluate this statement: 'Water boils at 100 degrees Celsius.'?",
	}
	for i, q := range questions {
		if q.Text != expected[i] {
			t.Fatalf("question %d: expected %q got %q", i, expected[i], q.Text)
		}
		if q.Strategy != StrategyTaxonomy || q.Source != sentence {
			t.Fatalf("question %d has wrong provenance: %+v", i, q)
		}
	}
}

func TestKeywordQuestionsEmpty(t *testing.T) {
	if got := KeywordQuestions(nil); len(got) != 0 {
		t.Fatalf("expected no questions for no keywords, got %v", got)
	}
}
