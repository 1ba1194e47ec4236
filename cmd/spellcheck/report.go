package main

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/spellcheck/pkg/store"
	"github.com/praetorian-inc/spellcheck/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	reportDatastore string
	reportRunID     int64
	reportFormat    string
	reportOffsets   bool
	reportColor     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report a stored run",
	Long: `Read a run from a result store written by "check --output" and render it in
any output format. The latest run is used unless --run is given.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	addReportFlags(reportCmd.Flags())
}

func addReportFlags(fs *pflag.FlagSet) {
	fs.StringVar(&reportDatastore, "datastore", "spellcheck.db", "Path to the result store")
	fs.Int64Var(&reportRunID, "run", 0, "Run ID to report (0 = latest)")
	fs.StringVar(&reportFormat, "format", "human", "Output format: human, azure, json, sarif")
	fs.BoolVar(&reportOffsets, "offsets", false, "Report character offsets instead of line:column")
	fs.StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	// A fresh in-memory store has nothing to report
	if reportDatastore == store.MemoryPath {
		return fmt.Errorf("cannot report from in-memory store")
	}
	if _, err := os.Stat(reportDatastore); err != nil {
		return fmt.Errorf("datastore not found: %s", reportDatastore)
	}

	s, err := store.New(store.Config{Path: reportDatastore})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	run, err := findRun(s, reportRunID)
	if err != nil {
		return err
	}

	stored, err := s.GetFileResults(run.ID)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}
	results := make([]types.FileResult, 0, len(stored))
	for _, r := range stored {
		results = append(results, *r)
	}
	logger.Debug("loaded run", "id", run.ID, "started", run.StartedAt, "files", len(results))

	outcome, err := writeResults(cmd, reportFormat, reportOffsets, reportColor, results)
	if err != nil {
		return err
	}
	if outcome.Failed {
		return ErrCheckFailed
	}
	return nil
}

func findRun(s store.Store, id int64) (*store.Run, error) {
	if id == 0 {
		run, err := store.LatestRun(s)
		if err != nil {
			return nil, fmt.Errorf("retrieving runs: %w", err)
		}
		if run == nil {
			return nil, fmt.Errorf("datastore has no runs")
		}
		return run, nil
	}

	runs, err := s.GetRuns()
	if err != nil {
		return nil, fmt.Errorf("retrieving runs: %w", err)
	}
	for _, r := range runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("run %d not found", id)
}
