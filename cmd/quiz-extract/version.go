package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the version stamped at build time.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of quiz-extract",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quiz-extract %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
