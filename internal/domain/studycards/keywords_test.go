package studycards

import "testing"

func TestExtractKeywordsFiltersStopwordsAndShortTokens(t *testing.T) {
	text := "The cat sat on the mat. The cat is a cat, it is so very small."
	keywords := ExtractKeywords(text, 10)

	for _, kw := range keywords {
		if _, ok := stopwords[kw]; ok {
			t.Fatalf("stop word leaked into keywords: %q", kw)
		}
		if len(kw) <= 2 {
			t.Fatalf("short token leaked into keywords: %q", kw)
		}
	}
}

func TestExtractKeywordsFrequencyOrder(t *testing.T) {
	text := "photosynthesis photosynthesis photosynthesis chlorophyll chlorophyll sunlight"
	keywords := ExtractKeywords(text, 3)

	expected := []string{"photosynthesis", "chlorophyll", "sunlight"}
	if len(keywords) != len(expected) {
		t.Fatalf("expected %d keywords, got %v", len(expected), keywords)
	}
	for i, kw := range expected {
		if keywords[i] != kw {
			t.Fatalf("position %d: expected %q got %q (all: %v)", i, kw, keywords[i], keywords)
		}
	}
}

func TestExtractKeywordsTiesBreakAlphabetically(t *testing.T) {
	text := "zebra apple mango zebra apple mango"
	keywords := ExtractKeywords(text, 3)

	expected := []string{"apple", "mango", "zebra"}
	for i, kw := range expected {
		if keywords[i] != kw {
			t.Fatalf("tie-break order wrong: expected %v got %v", expected, keywords)
		}
	}
}

func TestExtractKeywordsRespectsLimit(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"
	if got := len(ExtractKeywords(text, 5)); got != 5 {
		t.Fatalf("expected 5 keywords, got %d", got)
	}
	// fewer distinct terms than k returns them all
	if got := len(ExtractKeywords("quantum mechanics", 10)); got != 2 {
		t.Fatalf("expected 2 keywords, got %d", got)
	}
}

func TestExtractKeywordsStripsPunctuationAndCase(t *testing.T) {
	keywords := ExtractKeywords("Gravity! GRAVITY? gravity.", 5)
	if len(keywords) != 1 || keywords[0] != "gravity" {
		t.Fatalf("expected single keyword gravity, got %v", keywords)
	}
}
