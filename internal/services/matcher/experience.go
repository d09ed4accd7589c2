package matcher

import (
	"strings"
)

// ExperienceClassifier infers a required experience level (0-5) from the
// free text of a job description.
type ExperienceClassifier interface {
	Classify(text string) int
}

// experienceRule maps trigger phrases to a required level. Rules are
// evaluated in order; the first phrase found wins.
type experienceRule struct {
	phrases []string
	level   int
}

// keywordLadder is evaluated against the lowercased raw text, not the
// punctuation-stripped form, so phrases like "3+ years" still match.
var keywordLadder = []experienceRule{
	{phrases: []string{"no experience", "first time"}, level: 0},
	{phrases: []string{"beginner", "1 year"}, level: 1},
	{phrases: []string{"intermediate", "2-3 year"}, level: 2},
	{phrases: []string{"experienced", "3+ year"}, level: 3},
	{phrases: []string{"expert", "5+ year"}, level: 5},
}

// KeywordClassifier infers the required experience level through a fixed
// keyword ladder. It is brittle substring NLP kept for behavioral parity;
// swap the classifier on the extractor to change the heuristic.
type KeywordClassifier struct{}

// Classify returns the level of the first matching ladder rule, or 1 when
// nothing matches (some experience is implicitly expected).
func (KeywordClassifier) Classify(text string) int {
	lowered := strings.ToLower(text)

	for _, rule := range keywordLadder {
		for _, phrase := range rule.phrases {
			if strings.Contains(lowered, phrase) {
				return rule.level
			}
		}
	}

	return 1
}
