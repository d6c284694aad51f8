package speech

import (
	"fmt"
	"strings"
	"time"
)

const minCueDuration = time.Second

// BuildSRT lays sentences out as SRT cues. Without word-level timings
// from the synthesizer, cue length is estimated from word count at the
// given speaking rate.
func BuildSRT(sentences []string, wordsPerMinute int) (string, time.Duration) {
	if wordsPerMinute <= 0 {
		wordsPerMinute = 160
	}

	var (
		b      strings.Builder
		cursor time.Duration
		index  int
	)
	for _, sentence := range sentences {
		words := strings.Fields(sentence)
		if len(words) == 0 {
			continue
		}
		duration := time.Duration(float64(len(words)) / float64(wordsPerMinute) * float64(time.Minute))
		if duration < minCueDuration {
			duration = minCueDuration
		}
		index++
		start := cursor
		cursor += duration

		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			index, srtTimestamp(start), srtTimestamp(cursor), strings.Join(words, " "))
	}
	return b.String(), cursor
}

func srtTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	ms := (d - s*time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
