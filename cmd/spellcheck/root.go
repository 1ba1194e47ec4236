package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// logger is built from --verbose/--quiet before any subcommand runs.
var logger = log.New(io.Discard)

var rootCmd = &cobra.Command{
	Use:   "spellcheck",
	Short: "Spellcheck - find misspellings in text files",
	Long: `Spellcheck finds misspelled words in the files matched by a glob and reports
them by line and column, as plain diagnostics or as Azure Pipelines logging
commands.

Misspellings inside URLs are never reported. An optional inclusion regex limits
reporting to the regions of each file it matches.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
