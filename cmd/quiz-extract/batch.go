// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quiz-extract/internal/pipeline"
	"github.com/pdiddy/quiz-extract/internal/quiz"
)

var batchCmd = &cobra.Command{
	Use:   "batch [pages or directories...]",
	Short: "Extract questions from many saved quiz pages",
	Long: `Batch converts each page to <output-dir>/<page name>.json. Directories
contribute their .html and .htm files. Pages whose output already exists
are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Bool("force", false, "overwrite existing output files")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := extractConfig()
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	inputs, err := pipeline.CollectInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no .html or .htm pages found in %v", args)
	}

	result := pipeline.ConvertBatch(quiz.NewExtractor(logger), inputs, cfg.OutputDir, outputOptions(cfg), force, cmd.OutOrStdout())
	if result.HasFailures() {
		return fmt.Errorf("%d page(s) failed extraction", result.Failed)
	}
	return nil
}
