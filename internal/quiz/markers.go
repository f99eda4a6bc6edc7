// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Markers of the quiz review page layout.
const (
	questionsRootID   = "questions"
	questionPrefix    = "question_"
	answerPrefix      = "answer_"
	originalTextClass = "original_question_text"
	questionTextClass = "textarea_question_text"
	answerTextClass   = "answer_text"
	selectedClass     = "selected_answer"
	answerNamePrefix  = "question-"
	answerNameSep     = "-"
	lineBreakToken    = "<br>"
)

// IsQuestionContainer reports whether n is a div with an id of the form
// question_<digits>.
func IsQuestionContainer(n *html.Node) bool {
	return isContainer(n, questionPrefix)
}

// IsAnswerContainer reports whether n is a div with an id of the form
// answer_<digits>.
func IsAnswerContainer(n *html.Node) bool {
	return isContainer(n, answerPrefix)
}

// IsSelectedAnswer reports whether the class list of n carries the
// selected-answer token.
func IsSelectedAnswer(n *html.Node) bool {
	if n == nil {
		return false
	}
	class, _ := attr(n, "class")
	for _, tok := range strings.Fields(class) {
		if tok == selectedClass {
			return true
		}
	}
	return false
}

func isContainer(n *html.Node, prefix string) bool {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.Div {
		return false
	}
	id, ok := attr(n, "id")
	if !ok || !strings.HasPrefix(id, prefix) {
		return false
	}
	return isDigits(id[len(prefix):])
}

// containerID returns the numeric segment of a container id. The node must
// already satisfy the matching predicate.
func containerID(n *html.Node, prefix string) string {
	id, _ := attr(n, "id")
	return strings.TrimPrefix(id, prefix)
}

// secondSegment splits s on sep and returns the second field, or "" when
// there is none.
func secondSegment(s, sep string) string {
	parts := strings.Split(s, sep)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
