package studycards

import (
	"regexp"
	"strings"
)

var pageMarker = regexp.MustCompile(`(?i)Page\s*\d+[:.]?`)

// Normalize strips page-number artifacts and collapses whitespace runs to
// single spaces. It is pure and idempotent: Normalize(Normalize(x)) ==
// Normalize(x) for any input, including empty.
func Normalize(raw string) string {
	cleaned := pageMarker.ReplaceAllString(raw, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// reflowLineThreshold separates short body lines from lines long enough to be
// their own paragraph (titles and headers tend to be short, wrapped body text
// long).
const reflowLineThreshold = 60

// Reflow merges consecutive short lines into paragraphs while keeping long
// lines as standalone paragraphs. OCR output arrives line-oriented; the
// ingest path runs Reflow before Normalize so paragraph structure informs
// grammar correction.
func Reflow(raw string) string {
	var (
		paragraphs []string
		current    strings.Builder
	)

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			paragraphs = append(paragraphs, p)
		}
		current.Reset()
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case len(line) < reflowLineThreshold:
			current.WriteString(" ")
			current.WriteString(line)
		default:
			flush()
			paragraphs = append(paragraphs, line)
		}
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}
