// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/quiz-extract/internal/output"
	"github.com/pdiddy/quiz-extract/pkg/types"
)

// All returns every stored question in first-seen order.
func (s *Store) All(ctx context.Context) ([]types.Question, error) {
	return s.query(ctx, `SELECT question, answers, correct FROM questions ORDER BY rowid`)
}

// Search returns questions whose text contains term, case-insensitively
// for ASCII, in first-seen order.
func (s *Store) Search(ctx context.Context, term string) ([]types.Question, error) {
	pattern := "%" + escapeLike(term) + "%"
	return s.query(ctx,
		`SELECT question, answers, correct FROM questions
		 WHERE question LIKE ? ESCAPE '\' ORDER BY rowid`, pattern)
}

// Export writes every stored question to dest through the output writer.
func (s *Store) Export(ctx context.Context, dest string, opts output.Options) (int, error) {
	questions, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	if err := output.Write(questions, dest, opts); err != nil {
		return 0, err
	}
	return len(questions), nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.Question, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying questions: %w", err)
	}
	defer rows.Close()

	questions := []types.Question{}
	for rows.Next() {
		var (
			q           types.Question
			answersJSON string
			correct     sql.NullString
		)
		if err := rows.Scan(&q.Question, &answersJSON, &correct); err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		if err := json.Unmarshal([]byte(answersJSON), &q.Answers); err != nil {
			return nil, fmt.Errorf("decoding answers for %q: %w", q.Question, err)
		}
		if correct.Valid {
			q.Correct = types.Selected(correct.String)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
