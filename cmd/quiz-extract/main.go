// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quiz-extract CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/quiz-extract/internal/output"
	"github.com/pdiddy/quiz-extract/internal/pipeline"
	"github.com/pdiddy/quiz-extract/internal/quiz"
	"github.com/pdiddy/quiz-extract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Process exit codes.
const (
	exitOK          = 0
	exitInput       = 1
	exitStructure   = 2
	exitOutputWrite = 3
)

// logger is replaced in PersistentPreRunE once flags and config are read.
var logger = zap.NewNop()

// rootCmd extracts a single page; subcommands cover batches and the bank.
var rootCmd = &cobra.Command{
	Use:   "quiz-extract <quiz.html>",
	Short: "Extract quiz questions and answer choices from a saved review page",
	Long: `quiz-extract reads a quiz review page saved from the learning management
system, recovers every question with its answer choices and the selected
answer, and writes them as a JSON list.

The output defaults to output/<page name>.json. Use batch to convert many
pages and bank to collect questions from several pages into one database.`,
	Args:              cobra.ExactArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runExtract,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quiz-extract.yaml or ~/.config/quiz-extract/quiz-extract.yaml)")
	rootCmd.PersistentFlags().String("format", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().Bool("pretty", false, "indent JSON output")
	rootCmd.PersistentFlags().String("output-dir", "output", "directory for default output paths")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug detail to stderr")
	rootCmd.Flags().StringP("output", "o", "", "output file (default: <output-dir>/<page name>.json)")

	viper.SetDefault("format", string(types.FormatJSON))
	viper.SetDefault("pretty", false)
	viper.SetDefault("output_dir", "output")
	viper.SetDefault("verbose", false)

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("pretty", rootCmd.PersistentFlags().Lookup("pretty"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func setup(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := initConfig(cfgFile)
	if err != nil {
		return err
	}
	logger = newLogger(viper.GetBool("verbose"))
	if used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// initConfig loads the config file and environment. A missing default
// config file is not an error; a missing explicit one is.
func initConfig(cfgFile string) (string, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quiz-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quiz-extract"))
		}
	}

	viper.SetEnvPrefix("QUIZ_EXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return viper.ConfigFileUsed(), nil
}

func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// extractConfig assembles the extraction settings from flags, environment
// and config file.
func extractConfig() (types.ExtractConfig, error) {
	cfg := types.ExtractConfig{
		OutputDir: viper.GetString("output_dir"),
		Format:    types.OutputFormat(viper.GetString("format")),
		Pretty:    viper.GetBool("pretty"),
	}
	if !cfg.Format.Valid() {
		return cfg, fmt.Errorf("unsupported format %q: use json or yaml", cfg.Format)
	}
	return cfg, nil
}

func outputOptions(cfg types.ExtractConfig) output.Options {
	return output.Options{Format: cfg.Format, Pretty: cfg.Pretty}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := extractConfig()
	if err != nil {
		return err
	}

	input := args[0]
	dest, _ := cmd.Flags().GetString("output")
	if dest == "" {
		dest = pipeline.DefaultOutputPath(input, cfg.OutputDir, cfg.Format)
	}

	n, err := pipeline.ConvertFile(quiz.NewExtractor(logger), input, dest, outputOptions(cfg))
	if err != nil {
		return err
	}
	logger.Info("wrote questions", zap.Int("questions", n), zap.String("path", dest))
	return nil
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, quiz.ErrInputNotFound):
		return exitInput
	case quiz.IsStructural(err):
		return exitStructure
	case errors.Is(err, output.ErrOutputWriteFailed), errors.Is(err, output.ErrInvalidDocument):
		return exitOutputWrite
	default:
		return exitInput
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	_ = logger.Sync()
	os.Exit(exitCode(err))
}
