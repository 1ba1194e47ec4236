package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/praetorian-inc/spellcheck/pkg/check"
	"github.com/praetorian-inc/spellcheck/pkg/config"
	"github.com/praetorian-inc/spellcheck/pkg/enum"
	"github.com/praetorian-inc/spellcheck/pkg/provider"
	"github.com/praetorian-inc/spellcheck/pkg/report"
	"github.com/praetorian-inc/spellcheck/pkg/store"
	"github.com/praetorian-inc/spellcheck/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrCheckFailed is returned when a run found misspellings or could not
// check some files. The process exits non-zero without printing it.
var ErrCheckFailed = errors.New("spell check failed")

var (
	checkConfigPath       string
	checkIncludeRegex     string
	checkAllowlist        string
	checkDictionary       string
	checkExclude          []string
	checkFormat           string
	checkOffsets          bool
	checkColor            string
	checkWorkers          int
	checkMaxFileSize      int64
	checkIncludeHidden    bool
	checkRespectGitignore bool
	checkFailOnBinary     bool
	checkOutput           string
	checkIncremental      bool
)

var checkCmd = &cobra.Command{
	Use:   "check [glob]",
	Short: "Check files for misspellings",
	Long: `Check every file matched by the glob ("**" allowed) for misspellings.

Settings are read from .spellcheck.toml in the working directory (or --config)
and overridden by flags. The glob argument overrides the "files" setting.
The command exits with status 1 when any misspelling is found or any file
cannot be checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	addCheckFlags(checkCmd.Flags())
}

// addCheckFlags binds the check flags to fs, resetting them to defaults.
func addCheckFlags(fs *pflag.FlagSet) {
	fs.StringVar(&checkConfigPath, "config", "", "Path to config file (default .spellcheck.toml if present)")
	fs.StringVar(&checkIncludeRegex, "include-regex", "", "Only report misspellings inside matches of this regex")
	fs.StringVar(&checkAllowlist, "allowlist", "", "Path to a word list of accepted words (text or YAML)")
	fs.StringVar(&checkDictionary, "dictionary", "", "Path to a dictionary word list; words not in it are misspellings")
	fs.StringSliceVar(&checkExclude, "exclude", nil, "Glob of paths to skip (repeatable)")
	fs.StringVar(&checkFormat, "format", "human", "Output format: human, azure, json, sarif")
	fs.BoolVar(&checkOffsets, "offsets", false, "Report character offsets instead of line:column")
	fs.StringVar(&checkColor, "color", "auto", "Color output: auto, always, never")
	fs.IntVar(&checkWorkers, "workers", 0, "Concurrent file checks (0 = number of CPUs)")
	fs.Int64Var(&checkMaxFileSize, "max-file-size", config.DefaultMaxFileSize, "Maximum file size to check (bytes)")
	fs.BoolVar(&checkIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	fs.BoolVar(&checkRespectGitignore, "respect-gitignore", true, "Skip paths matched by .gitignore")
	fs.BoolVar(&checkFailOnBinary, "fail-on-binary", false, "Treat binary files as failures instead of skipping them")
	fs.StringVar(&checkOutput, "output", "", "Result store path (\":memory:\" or a SQLite file)")
	fs.BoolVar(&checkIncremental, "incremental", false, "Reuse stored results for unchanged files")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolveCheckConfig(cmd, args)
	if err != nil {
		return err
	}
	logger.Debug("resolved config", "files", cfg.Files, "include_regex", cfg.IncludeRegex, "format", cfg.Format, "workers", cfg.Workers)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	var fingerprint string
	var s store.Store
	if cfg.Output != "" {
		fingerprint, err = cfg.Fingerprint()
		if err != nil {
			return err
		}
		s, err = store.New(store.Config{Path: cfg.Output})
		if err != nil {
			return fmt.Errorf("creating store: %w", err)
		}
		defer s.Close()
	}

	checkerCfg := check.Config{
		Provider:     p,
		Include:      cfg.IncludeRegex,
		Workers:      cfg.Workers,
		FailOnBinary: cfg.FailOnBinary,
		Logger:       logger,
	}
	if cfg.Incremental {
		checkerCfg.Cache = s
		checkerCfg.Fingerprint = fingerprint
	}
	checker, err := check.New(checkerCfg)
	if err != nil {
		return fmt.Errorf("creating checker: %w", err)
	}

	paths, err := enum.Glob(ctx, enum.Config{
		Pattern:          cfg.Files,
		Exclude:          cfg.Exclude,
		IncludeHidden:    cfg.IncludeHidden,
		RespectGitignore: cfg.RespectGitignore,
		MaxFileSize:      cfg.MaxFileSize,
	})
	if err != nil {
		return fmt.Errorf("enumerating files: %w", err)
	}
	if len(paths) == 0 {
		logger.Warn("no files matched", "glob", cfg.Files)
	} else {
		logger.Info("checking files", "count", len(paths))
	}

	started := time.Now().UTC()
	results, err := checker.Run(ctx, paths)
	if err != nil {
		return fmt.Errorf("check interrupted: %w", err)
	}

	outcome, err := writeResults(cmd, cfg.Format, cfg.Offsets, cfg.Color, results)
	if err != nil {
		return err
	}

	if s != nil {
		run := &store.Run{Fingerprint: fingerprint, StartedAt: started, Outcome: outcome}
		if err := store.SaveRun(s, run, results); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		logger.Debug("saved run", "id", run.ID, "store", cfg.Output)
	}

	if outcome.Failed {
		return ErrCheckFailed
	}
	return nil
}

// resolveCheckConfig layers defaults, the config file, flags the user set,
// and the glob argument, then validates the result.
func resolveCheckConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, unknown, err := config.Load(checkConfigPath)
	if err != nil {
		return nil, err
	}
	for _, k := range unknown {
		logger.Warn("unknown config key", "key", k)
	}

	flags := cmd.Flags()
	if flags.Changed("include-regex") {
		cfg.IncludeRegex = checkIncludeRegex
	}
	if flags.Changed("allowlist") {
		cfg.Allowlist = checkAllowlist
	}
	if flags.Changed("dictionary") {
		cfg.Dictionary = checkDictionary
	}
	if flags.Changed("exclude") {
		cfg.Exclude = checkExclude
	}
	if flags.Changed("format") {
		cfg.Format = checkFormat
	}
	if flags.Changed("offsets") {
		cfg.Offsets = checkOffsets
	}
	if flags.Changed("color") {
		cfg.Color = checkColor
	}
	if flags.Changed("workers") {
		cfg.Workers = checkWorkers
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = checkMaxFileSize
	}
	if flags.Changed("include-hidden") {
		cfg.IncludeHidden = checkIncludeHidden
	}
	if flags.Changed("respect-gitignore") {
		cfg.RespectGitignore = checkRespectGitignore
	}
	if flags.Changed("fail-on-binary") {
		cfg.FailOnBinary = checkFailOnBinary
	}
	if flags.Changed("output") {
		cfg.Output = checkOutput
	}
	if flags.Changed("incremental") {
		cfg.Incremental = checkIncremental
	}
	if len(args) > 0 {
		cfg.Files = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildProvider picks the dictionary provider when a dictionary is
// configured and the built-in misspelling list otherwise.
func buildProvider(cfg *config.Config) (provider.Provider, error) {
	var opts []provider.Option
	if cfg.Allowlist != "" {
		allow, err := provider.LoadAllowlist(cfg.Allowlist)
		if err != nil {
			return nil, fmt.Errorf("loading allowlist: %w", err)
		}
		opts = append(opts, provider.WithAllowlist(allow))
	}

	if cfg.Dictionary != "" {
		d, err := provider.LoadDictionary(cfg.Dictionary, opts...)
		if err != nil {
			return nil, fmt.Errorf("loading dictionary: %w", err)
		}
		logger.Debug("loaded dictionary", "path", cfg.Dictionary, "words", d.Len())
		return d, nil
	}

	c, err := provider.NewCommon(opts...)
	if err != nil {
		return nil, fmt.Errorf("loading misspelling list: %w", err)
	}
	return c, nil
}

// writeResults renders results in the given format and returns the run
// outcome.
func writeResults(cmd *cobra.Command, format string, offsets bool, colorMode string, results []types.FileResult) (types.Outcome, error) {
	out := cmd.OutOrStdout()

	mode := report.Positions
	if offsets {
		mode = report.Offsets
	}

	switch format {
	case "json":
		return report.WriteJSON(out, results)
	case "sarif":
		return report.WriteSARIF(out, results)
	case "azure":
		return report.Render(report.NewAzureSink(out), results, mode), nil
	case "human":
		sink, err := humanSink(cmd, colorMode)
		if err != nil {
			return types.Outcome{}, err
		}
		return report.Render(sink, results, mode), nil
	default:
		return types.Outcome{}, fmt.Errorf("unknown output format: %s", format)
	}
}

func humanSink(cmd *cobra.Command, colorMode string) (*report.HumanSink, error) {
	out := cmd.OutOrStdout()
	color := false
	if f, ok := out.(*os.File); ok {
		var err error
		color, err = report.ColorEnabled(colorMode, f)
		if err != nil {
			return nil, err
		}
	} else if colorMode == "always" {
		color = true
	}
	return report.NewHumanSink(out, color), nil
}
