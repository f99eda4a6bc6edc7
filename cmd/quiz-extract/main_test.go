// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quiz-extract/internal/output"
	"github.com/pdiddy/quiz-extract/internal/quiz"
	"github.com/pdiddy/quiz-extract/pkg/types"
)

const samplePage = `<html><body><div id="questions">
<div id="question_111" class="display_question">
  <div class="original_question_text">
    <textarea class="textarea_question_text">  What is  2+2?<br>  </textarea>
  </div>
  <div id="answer_1" class="answer"><input name="question-111"><div class="answer_text">3</div></div>
  <div id="answer_2" class="answer selected_answer"><input name="question-111"><div class="answer_text">4</div></div>
</div>
<div id="question_112" class="display_question">
  <div class="original_question_text">
    <textarea class="textarea_question_text">Capital of France?</textarea>
  </div>
  <div id="answer_3" class="answer"><input name="question-112"><div class="answer_text">Paris</div></div>
  <div id="answer_4" class="answer"><input name="question-112"><div class="answer_text">Lyon</div></div>
</div>
</div></body></html>`

// resetFlags restores every flag to its default so each execution starts
// from the same state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	if args == nil {
		args = []string{}
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(samplePage), 0o644))
	return path
}

func readQuestions(t *testing.T, path string) []types.Question {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var qs []types.Question
	require.NoError(t, json.Unmarshal(data, &qs))
	return qs
}

var wantSample = []types.Question{
	{Question: "What is 2+2?", Answers: []string{"3", "4"}, Correct: types.Selected("4")},
	{Question: "Capital of France?", Answers: []string{"Paris", "Lyon"}},
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"input not found", fmt.Errorf("%w: open x.html", quiz.ErrInputNotFound), exitInput},
		{"structure", fmt.Errorf("extracting: %w", quiz.ErrStructureNotFound), exitStructure},
		{"malformed question", quiz.ErrMalformedQuestion, exitStructure},
		{"malformed answer", quiz.ErrMalformedAnswer, exitStructure},
		{"orphan", fmt.Errorf("wrapped: %w", quiz.ErrOrphanAnswer), exitStructure},
		{"write failed", fmt.Errorf("writing: %w", output.ErrOutputWriteFailed), exitOutputWrite},
		{"invalid document", output.ErrInvalidDocument, exitOutputWrite},
		{"other", errors.New("unknown flag"), exitInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootWritesExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := writePage(t, dir, "quiz.html")
	dest := filepath.Join(dir, "results", "quiz.json")

	_, err := execute(t, input, "-o", dest)
	require.NoError(t, err)
	assert.Equal(t, wantSample, readQuestions(t, dest))
}

func TestRootDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writePage(t, dir, "week3.review.html")

	_, err := execute(t, "week3.review.html")
	require.NoError(t, err)
	assert.Equal(t, wantSample, readQuestions(t, filepath.Join("output", "week3.json")))
}

func TestRootFormatFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	input := writePage(t, dir, "quiz.html")
	t.Setenv("QUIZ_EXTRACT_FORMAT", "yaml")
	t.Setenv("QUIZ_EXTRACT_OUTPUT_DIR", filepath.Join(dir, "yaml-out"))

	_, err := execute(t, input)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "yaml-out", "quiz.yaml"))
}

func TestRootMissingInput(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "output", "missing.json")

	_, err := execute(t, filepath.Join(dir, "missing.html"), "-o", dest)
	require.Error(t, err)
	assert.Equal(t, exitInput, exitCode(err))
	assert.NoDirExists(t, filepath.Dir(dest))
}

func TestRootStructureError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "blank.html")
	require.NoError(t, os.WriteFile(input, []byte("<html><body></body></html>"), 0o644))

	_, err := execute(t, input, "-o", filepath.Join(dir, "blank.json"))
	require.Error(t, err)
	assert.Equal(t, exitStructure, exitCode(err))
}

func TestRootRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	input := writePage(t, dir, "quiz.html")

	_, err := execute(t, input, "--format", "xml", "-o", filepath.Join(dir, "quiz.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestRootRequiresInput(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestBatchAndBank(t *testing.T) {
	dir := t.TempDir()
	pages := filepath.Join(dir, "pages")
	require.NoError(t, os.MkdirAll(pages, 0o755))
	writePage(t, pages, "a.html")
	writePage(t, pages, "b.html")
	outDir := filepath.Join(dir, "out")
	dbPath := filepath.Join(dir, "bank.db")

	out, err := execute(t, "batch", pages, "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Batch summary: 2 converted, 0 skipped, 0 failed (total: 2)")

	out, err = execute(t, "batch", pages, "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "0 converted, 2 skipped")

	out, err = execute(t, "bank", "ingest", "--bank", dbPath,
		filepath.Join(outDir, "a.json"), filepath.Join(outDir, "b.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "questions added: 2, updated: 2")

	exportPath := filepath.Join(dir, "export.json")
	_, err = execute(t, "bank", "export", "--bank", dbPath, "-o", exportPath)
	require.NoError(t, err)
	assert.Equal(t, wantSample, readQuestions(t, exportPath))

	out, err = execute(t, "bank", "search", "--bank", dbPath, "france")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Capital of France?")
	assert.Contains(t, out, "1 question\n")

	out, err = execute(t, "bank", "search", "--bank", dbPath, "--json", "2+2")
	require.NoError(t, err)
	var found []types.Question
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	assert.Equal(t, wantSample[:1], found)
}

func TestBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.html")
	require.NoError(t, os.WriteFile(bad, []byte("<html></html>"), 0o644))

	out, err := execute(t, "batch", bad, "--output-dir", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 page(s) failed")
	assert.Contains(t, out, "failed:")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "quiz-extract dev\n", out)
}

// chdir switches the working directory to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
