// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quiz recovers questions and answer choices from a saved quiz
// review page. Extraction makes two passes over the questions container:
// the first registers every question in document order, the second
// attaches each answer to the question named by its input element.
package quiz

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pdiddy/quiz-extract/pkg/types"
)

// QuestionSet is an ordered mapping from question id to record. Iteration
// order is the order in which questions were registered.
type QuestionSet struct {
	order []string
	byID  map[string]*types.Question
}

func newQuestionSet() *QuestionSet {
	return &QuestionSet{byID: make(map[string]*types.Question)}
}

// Len returns the number of registered questions.
func (s *QuestionSet) Len() int {
	return len(s.order)
}

// IDs returns the question ids in registration order.
func (s *QuestionSet) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Get returns a copy of the record for id.
func (s *QuestionSet) Get(id string) (types.Question, bool) {
	q, ok := s.byID[id]
	if !ok {
		return types.Question{}, false
	}
	return cloneQuestion(*q), true
}

// Questions returns the records in registration order with the ids dropped.
// The result is never nil.
func (s *QuestionSet) Questions() []types.Question {
	out := make([]types.Question, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneQuestion(*s.byID[id]))
	}
	return out
}

// put registers q under id. A repeated id replaces the earlier record but
// keeps its position.
func (s *QuestionSet) put(id string, q types.Question) (replaced bool) {
	if _, ok := s.byID[id]; ok {
		replaced = true
	} else {
		s.order = append(s.order, id)
	}
	s.byID[id] = &q
	return replaced
}

func cloneQuestion(q types.Question) types.Question {
	answers := make([]string, len(q.Answers))
	copy(answers, q.Answers)
	q.Answers = answers
	if q.Correct != nil {
		q.Correct = types.Selected(*q.Correct)
	}
	return q
}

// Extractor parses quiz review pages.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor returns an Extractor that reports skipped and replaced
// records to log at debug level. A nil logger discards them.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Extract parses markup with a discarding logger.
func Extract(markup string) (*QuestionSet, error) {
	return NewExtractor(nil).Extract(markup)
}

// ReadFile reads the page at path. A path that cannot be opened yields
// ErrInputNotFound.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	return string(data), nil
}

// ExtractFile reads the page at path and extracts it.
func (e *Extractor) ExtractFile(path string) (*QuestionSet, error) {
	markup, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := e.Extract(markup)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	return set, nil
}

// Extract parses markup and returns its questions. It fails with
// ErrStructureNotFound when the page has no questions container,
// ErrMalformedQuestion or ErrMalformedAnswer when a container lacks a
// required nested element, and ErrOrphanAnswer when an answer names a
// question that was not registered.
func (e *Extractor) Extract(markup string) (*QuestionSet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	root := doc.Find("div#" + questionsRootID).First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("%w: no div with id %q", ErrStructureNotFound, questionsRootID)
	}

	set := newQuestionSet()
	if err := e.collectQuestions(root, set); err != nil {
		return nil, err
	}
	if err := e.collectAnswers(root, set); err != nil {
		return nil, err
	}

	e.log.Debug("extracted questions", zap.Int("questions", set.Len()))
	return set, nil
}

func (e *Extractor) collectQuestions(root *goquery.Selection, set *QuestionSet) error {
	var err error
	containers(root, IsQuestionContainer).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		id := containerID(s.Get(0), questionPrefix)

		original := s.Find("div." + originalTextClass).First()
		if original.Length() == 0 {
			e.log.Debug("skipping question without original text", zap.String("question_id", id))
			return true
		}

		text := original.Find("textarea." + questionTextClass).First()
		if text.Length() == 0 {
			err = fmt.Errorf("%w: question %s has no textarea.%s", ErrMalformedQuestion, id, questionTextClass)
			return false
		}

		q := types.Question{
			Question: NormalizeQuestion(text.Text()),
			Answers:  []string{},
		}
		if set.put(id, q) {
			e.log.Debug("question id repeated; keeping last text", zap.String("question_id", id))
		}
		return true
	})
	return err
}

func (e *Extractor) collectAnswers(root *goquery.Selection, set *QuestionSet) error {
	var err error
	containers(root, IsAnswerContainer).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		node := s.Get(0)
		answerID := containerID(node, answerPrefix)

		textSel := s.Find("div." + answerTextClass).First()
		if textSel.Length() == 0 {
			err = fmt.Errorf("%w: answer %s has no div.%s", ErrMalformedAnswer, answerID, answerTextClass)
			return false
		}
		text := Normalize(textSel.Text())

		input := s.Find(fmt.Sprintf("input[name^=%q]", answerNamePrefix)).First()
		if input.Length() == 0 {
			err = fmt.Errorf("%w: answer %s has no input named %s<id>", ErrMalformedAnswer, answerID, answerNamePrefix)
			return false
		}
		name, _ := input.Attr("name")
		questionID := secondSegment(name, answerNameSep)
		if questionID == "" {
			err = fmt.Errorf("%w: answer %s input name %q carries no question id", ErrMalformedAnswer, answerID, name)
			return false
		}

		q, ok := set.byID[questionID]
		if !ok {
			err = fmt.Errorf("%w: answer %s references unknown question %s", ErrOrphanAnswer, answerID, questionID)
			return false
		}

		q.Answers = append(q.Answers, text)
		if IsSelectedAnswer(node) {
			if q.HasCorrect() {
				e.log.Debug("multiple selected answers; keeping last",
					zap.String("question_id", questionID),
					zap.String("previous", q.CorrectText()),
					zap.String("answer", text))
			}
			q.Correct = types.Selected(text)
		}
		return true
	})
	return err
}

// containers returns the div descendants of root that satisfy match, in
// document order.
func containers(root *goquery.Selection, match func(*html.Node) bool) *goquery.Selection {
	return root.Find("div[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return match(s.Get(0))
	})
}
