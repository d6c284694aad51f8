package tokens

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

var (
	once     sync.Once
	encoder  *tiktoken.Tiktoken
	loadFail error
)

// Count returns the token count for text using the cl100k_base encoding,
// falling back to a rune/word estimate when the encoding cannot be loaded
// (e.g. offline environments without the cached BPE files).
func Count(text string) int {
	if text == "" {
		return 0
	}
	once.Do(func() {
		encoder, loadFail = tiktoken.GetEncoding(defaultEncoding)
	})
	if loadFail != nil || encoder == nil {
		return estimate(text)
	}
	return len(encoder.Encode(text, nil, nil))
}

// estimate over-approximates so batch budgets stay under provider caps.
func estimate(text string) int {
	runes := utf8.RuneCountInString(text)
	words := len(strings.Fields(text))
	byRunes := (runes + 1) / 2
	if byRunes < words {
		return words
	}
	return byRunes
}
