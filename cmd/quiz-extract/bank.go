// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/quiz-extract/internal/bank"
	"github.com/pdiddy/quiz-extract/pkg/types"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Collect extracted questions into a question bank",
	Long: `Bank keeps a SQLite database of questions gathered from many extracted
pages. A question seen on several pages is stored once, with the most
recent answer list and the last recorded correct answer.`,
}

// --- ingest subcommand ---

var bankIngestCmd = &cobra.Command{
	Use:   "ingest [question files...]",
	Short: "Add questions from extracted JSON files to the bank",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBankIngest,
}

func runBankIngest(cmd *cobra.Command, args []string) error {
	store, err := openBank()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.IngestFiles(cmd.Context(), args, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed ingestion", summary.Failed)
	}
	return nil
}

// --- export subcommand ---

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every question in the bank to one file",
	Args:  cobra.NoArgs,
	RunE:  runBankExport,
}

func runBankExport(cmd *cobra.Command, args []string) error {
	cfg, err := extractConfig()
	if err != nil {
		return err
	}

	dest, _ := cmd.Flags().GetString("output")
	if dest == "" {
		dest = filepath.Join(cfg.OutputDir, "quiz-bank"+cfg.Format.Ext())
	}

	store, err := openBank()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Export(cmd.Context(), dest, outputOptions(cfg))
	if err != nil {
		return err
	}
	logger.Info("exported question bank", zap.Int("questions", n), zap.String("path", dest))
	return nil
}

// --- search subcommand ---

var bankSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "List bank questions containing the given text",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankSearch,
}

func runBankSearch(cmd *cobra.Command, args []string) error {
	store, err := openBank()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd, results, jsonOutput)
}

func formatSearchOutput(cmd *cobra.Command, results []types.Question, jsonOutput bool) error {
	w := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No questions found.")
		return nil
	}

	for i, q := range results {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Question)
		for _, a := range q.Answers {
			marker := " "
			if q.HasCorrect() && a == *q.Correct {
				marker = "*"
			}
			fmt.Fprintf(w, "   %s %s\n", marker, a)
		}
	}
	fmt.Fprintf(w, "\n%d %s\n", len(results), plural(len(results), "question", "questions"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// bankConfig resolves the bank path, falling back to the output directory.
func bankConfig() types.BankConfig {
	path := viper.GetString("bank")
	if path == "" {
		path = filepath.Join(viper.GetString("output_dir"), "quiz-bank.db")
	}
	return types.BankConfig{Path: path}
}

func openBank() (*bank.Store, error) {
	return bank.Open(bankConfig())
}

func init() {
	bankCmd.PersistentFlags().String("bank", "", "question bank database (default: <output-dir>/quiz-bank.db)")
	_ = viper.BindPFlag("bank", bankCmd.PersistentFlags().Lookup("bank"))

	bankExportCmd.Flags().StringP("output", "o", "", "export file (default: <output-dir>/quiz-bank.json)")
	bankSearchCmd.Flags().Bool("json", false, "output results as JSON")

	bankCmd.AddCommand(bankIngestCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankSearchCmd)
	rootCmd.AddCommand(bankCmd)
}
