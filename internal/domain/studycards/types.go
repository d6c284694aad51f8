package studycards

import "github.com/edubot/edubot-backend/pkg/metrics"

// Strategy identifies which generator produced a question.
type Strategy string

const (
	StrategyKeyword  Strategy = "keyword"
	StrategyTaxonomy Strategy = "taxonomy"
)

// Question pairs the generated text with its provenance: the strategy and the
// keyword or sentence it was derived from.
type Question struct {
	Text     string   `json:"text"`
	Strategy Strategy `json:"strategy"`
	Source   string   `json:"source"`
}

// Flashcard is an accepted question/answer pair. It is never mutated after
// assembly.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Request is the pipeline input.
type Request struct {
	Text        string `json:"text"`
	UseTaxonomy bool   `json:"useTaxonomy"`
}

// Materials is the pipeline's terminal output. Flashcards keep generation
// order: keyword cards first, then taxonomy cards in sentence order.
type Materials struct {
	Summary    string                `json:"summary"`
	Flashcards []Flashcard           `json:"flashcards"`
	Stats      metrics.PipelineStats `json:"stats"`
}

// Config holds the pipeline thresholds. Zero values are replaced by the
// defaults below when the service is constructed.
type Config struct {
	MaxChunkChars       int
	MaxKeywords         int
	ConfidenceThreshold float64
	SimilarityThreshold float64
	MinSentenceChars    int
}

const (
	defaultMaxChunkChars       = 1000
	defaultMaxKeywords         = 10
	defaultConfidenceThreshold = 0.3
	defaultSimilarityThreshold = 0.8
	defaultMinSentenceChars    = 5
)

func (c Config) withDefaults() Config {
	if c.MaxChunkChars <= 0 {
		c.MaxChunkChars = defaultMaxChunkChars
	}
	if c.MaxKeywords <= 0 {
		c.MaxKeywords = defaultMaxKeywords
	}
	if c.ConfidenceThreshold <= 0 {
		c.ConfidenceThreshold = defaultConfidenceThreshold
	}
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.MinSentenceChars <= 0 {
		c.MinSentenceChars = defaultMinSentenceChars
	}
	return c
}
