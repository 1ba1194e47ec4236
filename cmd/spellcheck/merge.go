package main

import (
	"fmt"
	"path/filepath"

	"github.com/praetorian-inc/spellcheck/pkg/store"
	"github.com/spf13/cobra"
)

var (
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <source1.db> <source2.db> [source3.db...]",
	Short: "Merge multiple result stores",
	Long: `Merge multiple result stores into a single output store.

This is useful for combining the results of a check split across several
CI jobs. Every source run is copied with a new run ID; "report --run" can
then render any of them.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.db", "Output store path")
}

func runMerge(cmd *cobra.Command, args []string) error {
	dest, _ := filepath.Abs(mergeOutput)
	for _, src := range args {
		if abs, _ := filepath.Abs(src); abs == dest {
			return fmt.Errorf("output %s is also a source", mergeOutput)
		}
	}
	logger.Debug("merging stores", "sources", len(args), "output", mergeOutput)

	stats, err := store.Merge(store.MergeConfig{
		SourcePaths: args,
		DestPath:    mergeOutput,
	})
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Merge complete:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Sources processed: %d\n", stats.SourcesProcessed)
	fmt.Fprintf(cmd.OutOrStdout(), "  Runs merged: %d\n", stats.RunsMerged)
	fmt.Fprintf(cmd.OutOrStdout(), "  Files merged: %d\n", stats.FilesMerged)
	fmt.Fprintf(cmd.OutOrStdout(), "  Misspellings merged: %d\n", stats.MisspellingsMerged)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", mergeOutput)

	return nil
}
