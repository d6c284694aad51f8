package metrics

// PipelineStats captures how much work a single pipeline run performed.
type PipelineStats struct {
	Chunks         int   `json:"chunks"`
	QuestionsAsked int   `json:"questionsAsked"`
	FlashcardsKept int   `json:"flashcardsKept"`
	DurationMs     int64 `json:"durationMs"`
}

// IsZero reports whether stats were never populated.
func (s PipelineStats) IsZero() bool {
	return s.Chunks == 0 && s.QuestionsAsked == 0 && s.FlashcardsKept == 0 && s.DurationMs == 0
}
