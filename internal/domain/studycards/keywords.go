package studycards

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords mirrors the fixed English list the extraction was tuned with.
var stopwords = buildStopwords(`
	i me my myself we our ours ourselves you your yours yourself yourselves he him his himself
	she her hers herself it its itself they them their theirs themselves what which who whom this
	that these those am is are was were be been being have has had having do does did doing a an
	the and but if or because as until while of at by for with about against between into through
	during before after above below to from up down in out on off over under again further then
	once here there when where why how all any both each few more most other some such no nor not
	only own same so than too very s t can will just don should now
`)

func buildStopwords(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(raw) {
		set[w] = struct{}{}
	}
	return set
}

// ExtractKeywords lower-cases the text, strips punctuation, drops stop words
// and tokens of length <= 2, and returns the k most frequent remaining tokens.
// Frequency ties break alphabetically so the ranking is fully deterministic.
func ExtractKeywords(text string, k int) []string {
	if k <= 0 {
		return nil
	}
	lowered := strings.ToLower(text)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, lowered)

	counts := make(map[string]int)
	var order []string
	for _, token := range strings.Fields(stripped) {
		if len(token) <= 2 {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return order[i] < order[j]
	})

	if len(order) > k {
		order = order[:k]
	}
	return order
}
