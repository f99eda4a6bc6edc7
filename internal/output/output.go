// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes question lists to disk as JSON or YAML.
// Every document is checked against the question list schema before it is
// written. Writes truncate the destination in place; there is no atomic
// rename.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quiz-extract/pkg/types"
)

var (
	ErrOutputWriteFailed = errors.New("output write failed")
	ErrInvalidDocument   = errors.New("invalid question document")
)

// Options controls the encoding of a written document.
type Options struct {
	// Format selects json or yaml. Empty means json.
	Format types.OutputFormat

	// Pretty indents JSON output by two spaces. Ignored for yaml.
	Pretty bool
}

func (o Options) format() types.OutputFormat {
	if o.Format == "" {
		return types.FormatJSON
	}
	return o.Format
}

// Encode renders questions in the requested format. A nil list encodes as
// an empty array and a nil answer slice as an empty one.
func Encode(questions []types.Question, opts Options) ([]byte, error) {
	format := opts.format()
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	list := make([]types.Question, len(questions))
	for i, q := range questions {
		if q.Answers == nil {
			q.Answers = []string{}
		}
		list[i] = q
	}

	doc, err := encodeJSON(list, opts.Pretty && format == types.FormatJSON)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	if format == types.FormatJSON {
		return doc, nil
	}

	data, err := yaml.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

func encodeJSON(list []types.Question, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(list); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes questions and writes them to dest, creating missing parent
// directories and overwriting any existing file. Filesystem failures wrap
// ErrOutputWriteFailed.
func Write(questions []types.Question, dest string, opts Options) error {
	data, err := Encode(questions, opts)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating directory %s: %w", ErrOutputWriteFailed, dir, err)
		}
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWriteFailed, err)
	}
	return nil
}

// ReadJSON loads a question list previously written in JSON format.
func ReadJSON(path string) ([]types.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var questions []types.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return questions, nil
}
