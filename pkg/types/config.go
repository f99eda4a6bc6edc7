// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects the encoding of the written question list.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Valid reports whether f is a supported output format.
func (f OutputFormat) Valid() bool {
	return f == FormatJSON || f == FormatYAML
}

// Ext returns the file extension used for f, including the dot.
func (f OutputFormat) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// ExtractConfig holds settings for converting quiz pages.
type ExtractConfig struct {
	// OutputDir is the directory for default output paths (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects the output encoding: json or yaml.
	Format OutputFormat `json:"format" yaml:"format"`

	// Pretty indents JSON output.
	Pretty bool `json:"pretty" yaml:"pretty"`
}

// BankConfig holds settings for the question bank.
type BankConfig struct {
	// Path is the SQLite database file (default "output/quiz-bank.db").
	Path string `json:"path" yaml:"path"`
}
