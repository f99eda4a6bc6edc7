// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Question is one quiz question recovered from a review page.
type Question struct {
	// Question is the normalized question text.
	Question string `json:"question" yaml:"question"`

	// Answers lists the answer choices in document order.
	Answers []string `json:"answers" yaml:"answers"`

	// Correct points at the text of the selected answer, which may be
	// empty. Nil when the page marks no answer as selected; omitted from
	// the output in that case.
	Correct *string `json:"correct,omitempty" yaml:"correct,omitempty"`
}

// Selected returns a Correct value holding text.
func Selected(text string) *string {
	return &text
}

// HasCorrect reports whether a selected answer was recorded.
func (q Question) HasCorrect() bool {
	return q.Correct != nil
}

// CorrectText returns the selected answer text, or "" when none was recorded.
func (q Question) CorrectText() string {
	if q.Correct == nil {
		return ""
	}
	return *q.Correct
}

// IsAnswer reports whether text is one of the answer choices.
func (q Question) IsAnswer(text string) bool {
	for _, a := range q.Answers {
		if a == text {
			return true
		}
	}
	return false
}
