package studycards

import "fmt"

// keywordTemplates are cycled by keyword index, one question per keyword.
var keywordTemplates = []string{
	"What is %s?",
	"Explain the concept of %s.",
	"Why is %s important?",
	"How does %s work?",
}

// taxonomyTemplates probe inference, explanation, and evaluation of a single
// sentence, quoting it verbatim.
var taxonomyTemplates = []string{
	"What can you infer from: '%s'?",
	"Can you explain: '%s'?",
	"How would you evaluate this statement: '%s'?",
}

// KeywordQuestions produces exactly one templated question per keyword, in
// keyword order.
func KeywordQuestions(keywords []string) []Question {
	questions := make([]Question, 0, len(keywords))
	for i, kw := range keywords {
		template := keywordTemplates[i%len(keywordTemplates)]
		questions = append(questions, Question{
			Text:     fmt.Sprintf(template, kw),
			Strategy: StrategyKeyword,
			Source:   kw,
		})
	}
	return questions
}

// TaxonomyQuestions emits the full taxonomy template set for one sentence.
func TaxonomyQuestions(sentence string) []Question {
	questions := make([]Question, 0, len(taxonomyTemplates))
	for _, template := range taxonomyTemplates {
		questions = append(questions, Question{
			Text:     fmt.Sprintf(template, sentence),
			Strategy: StrategyTaxonomy,
			Source:   sentence,
		})
	}
	return questions
}
