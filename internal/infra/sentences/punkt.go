package sentences

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	domain "github.com/edubot/edubot-backend/internal/domain/studycards"
)

// PunktSplitter segments text with the Punkt algorithm, which handles
// abbreviations and punctuation ambiguity. The tokenizer is built once and
// reused; Tokenize itself is stateless.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the English Punkt training data.
func NewPunktSplitter() (*PunktSplitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt tokenizer: %w", err)
	}
	return &PunktSplitter{tokenizer: tokenizer}, nil
}

// Split returns trimmed, non-empty sentences in document order.
func (s *PunktSplitter) Split(text string) []string {
	raw := s.tokenizer.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, sent := range raw {
		if trimmed := strings.TrimSpace(sent.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var _ domain.SentenceSplitter = (*PunktSplitter)(nil)
