package grammar

import (
	"context"
	"testing"
)

func TestApplyMatches(t *testing.T) {
	text := "He go to school. She like apples."
	matches := []match{
		{Offset: 3, Length: 2, Replacements: []replacement{{Value: "goes"}}},
		{Offset: 21, Length: 4, Replacements: []replacement{{Value: "likes"}}},
	}

	got := applyMatches(text, matches)
	want := "He goes to school. She likes apples."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestApplyMatchesSkipsEmptyAndOutOfRange(t *testing.T) {
	text := "short"
	matches := []match{
		{Offset: 0, Length: 5},
		{Offset: 3, Length: 10, Replacements: []replacement{{Value: "x"}}},
	}
	if got := applyMatches(text, matches); got != text {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestNoopPassesTextThrough(t *testing.T) {
	text := "He go to school."
	got, err := Noop{}.Correct(context.Background(), text)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if got != text {
		t.Fatalf("got %q, want %q", got, text)
	}
}
