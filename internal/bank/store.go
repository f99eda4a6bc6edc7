// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bank accumulates extracted questions from many quiz pages in a
// SQLite database. Questions are keyed by their normalized text, so the
// same question seen on several review pages is stored once.
package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quiz-extract/internal/output"
	"github.com/pdiddy/quiz-extract/pkg/types"
)

// Store manages the question bank database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the question bank at cfg.Path, creating missing
// parent directories and the schema.
func Open(cfg types.BankConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("question bank path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating bank directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL UNIQUE,
			answers TEXT NOT NULL,
			correct TEXT,
			source TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_source ON questions(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds question counts from one ingest call.
type IngestSummary struct {
	Added   int
	Updated int
}

// Total returns the number of questions written.
func (s IngestSummary) Total() int {
	return s.Added + s.Updated
}

// Ingest upserts questions extracted from source. An existing question
// takes the new answer list. Its correct answer is replaced when the new
// record carries one, kept when it is still among the new answers, and
// cleared otherwise.
func (s *Store) Ingest(ctx context.Context, source string, questions []types.Question) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	var summary IngestSummary

	for _, q := range questions {
		answers := q.Answers
		if answers == nil {
			answers = []string{}
		}
		answersJSON, err := json.Marshal(answers)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("encoding answers for %q: %w", q.Question, err)
		}

		exists := true
		var stored sql.NullString
		err = tx.QueryRowContext(ctx,
			`SELECT correct FROM questions WHERE question = ?`, q.Question,
		).Scan(&stored)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			exists = false
		case err != nil:
			return IngestSummary{}, fmt.Errorf("looking up %q: %w", q.Question, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions (question, answers, correct, source, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(question) DO UPDATE SET
				answers=excluded.answers,
				correct=excluded.correct,
				source=excluded.source,
				updated_at=excluded.updated_at`,
			q.Question, string(answersJSON), mergeCorrect(q, stored), source, now,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("upserting %q: %w", q.Question, err)
		}

		if exists {
			summary.Updated++
		} else {
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// mergeCorrect picks the correct answer to store for q given the value
// already stored for the same question text.
func mergeCorrect(q types.Question, stored sql.NullString) sql.NullString {
	if q.HasCorrect() {
		return sql.NullString{String: *q.Correct, Valid: true}
	}
	if stored.Valid && q.IsAnswer(stored.String) {
		return stored
	}
	return sql.NullString{}
}

// FileSummary holds per-file counts from IngestFiles.
type FileSummary struct {
	Files     int
	Failed    int
	Questions IngestSummary
}

// HasFailures reports whether any file failed to ingest.
func (s FileSummary) HasFailures() bool {
	return s.Failed > 0
}

// IngestFiles loads each JSON question list and ingests it with the file
// path as source, printing per-file status to w.
func (s *Store) IngestFiles(ctx context.Context, paths []string, w io.Writer) (FileSummary, error) {
	var summary FileSummary
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		questions, err := output.ReadJSON(path)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		got, err := s.Ingest(ctx, path, questions)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "ingested %s (%d new, %d updated)\n", path, got.Added, got.Updated)
		summary.Files++
		summary.Questions.Added += got.Added
		summary.Questions.Updated += got.Updated
	}

	fmt.Fprintf(w, "\nfiles: %d, failed: %d, questions added: %d, updated: %d\n",
		summary.Files, summary.Failed, summary.Questions.Added, summary.Questions.Updated)
	return summary, nil
}

// Count returns the number of stored questions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting questions: %w", err)
	}
	return n, nil
}
