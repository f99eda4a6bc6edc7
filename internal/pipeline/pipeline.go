// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline connects the extractor to the writer for single files
// and batches of saved quiz pages.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/quiz-extract/internal/output"
	"github.com/pdiddy/quiz-extract/internal/quiz"
	"github.com/pdiddy/quiz-extract/pkg/types"
)

// Extractor turns a saved quiz page into an ordered question set.
// *quiz.Extractor implements it; tests supply fakes.
type Extractor interface {
	ExtractFile(path string) (*quiz.QuestionSet, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DefaultOutputPath returns outputDir/<stem><ext> where stem is the input
// file name up to its first dot.
func DefaultOutputPath(input, outputDir string, format types.OutputFormat) string {
	base := filepath.Base(input)
	stem, _, _ := strings.Cut(base, ".")
	if stem == "" {
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if stem == "" {
		stem = base
	}
	return filepath.Join(outputDir, stem+format.Ext())
}

// ConvertFile extracts the page at input and writes its questions to dest.
// Nothing is written when reading or extraction fails. It returns the
// number of questions written.
func ConvertFile(ex Extractor, input, dest string, opts output.Options) (int, error) {
	set, err := ex.ExtractFile(input)
	if err != nil {
		return 0, err
	}

	questions := set.Questions()
	if err := output.Write(questions, dest, opts); err != nil {
		return 0, fmt.Errorf("writing %s: %w", dest, err)
	}
	return len(questions), nil
}

// ConvertBatch converts each input to its default output path under
// outputDir, printing per-file status to w and returning a summary.
// Inputs whose output already exists are skipped unless force is set.
func ConvertBatch(ex Extractor, inputs []string, outputDir string, opts output.Options, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, input := range inputs {
		dest := DefaultOutputPath(input, outputDir, opts.Format)

		if !force {
			if _, err := os.Stat(dest); err == nil {
				fmt.Fprintf(w, "skipped:   %s (%s already exists)\n", input, dest)
				result.Skipped++
				continue
			}
		}

		n, err := ConvertFile(ex, input, dest, opts)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", input, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "converted: %s -> %s (%d questions)\n", input, dest, n)
		result.Converted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// CollectInputs expands args into page paths. Files are taken as given;
// directories contribute their .html and .htm files in name order.
func CollectInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", quiz.ErrInputNotFound, err)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isPage(entry.Name()) {
				continue
			}
			inputs = append(inputs, filepath.Join(arg, entry.Name()))
		}
	}
	return inputs, nil
}

func isPage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}
