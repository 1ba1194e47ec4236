package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/spellcheck/pkg/check"
	"github.com/praetorian-inc/spellcheck/pkg/config"
	"github.com/praetorian-inc/spellcheck/pkg/serve"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath   string
	serveIncludeRegex string
	serveAllowlist    string
	serveDictionary   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as streaming server for editor integration",
	Long: `Run Spellcheck as a long-lived streaming server that accepts check requests
via stdin and writes results to stdout using NDJSON format.

The word lists are loaded once at startup and requests are processed until
stdin closes, a "close" request arrives, or SIGTERM is received.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config file (default .spellcheck.toml if present)")
	serveCmd.Flags().StringVar(&serveIncludeRegex, "include-regex", "", "Only report misspellings inside matches of this regex")
	serveCmd.Flags().StringVar(&serveAllowlist, "allowlist", "", "Path to a word list of accepted words (text or YAML)")
	serveCmd.Flags().StringVar(&serveDictionary, "dictionary", "", "Path to a dictionary word list; words not in it are misspellings")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("include-regex") {
		cfg.IncludeRegex = serveIncludeRegex
	}
	if flags.Changed("allowlist") {
		cfg.Allowlist = serveAllowlist
	}
	if flags.Changed("dictionary") {
		cfg.Dictionary = serveDictionary
	}

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	checker, err := check.New(check.Config{
		Provider:     p,
		Include:      cfg.IncludeRegex,
		FailOnBinary: cfg.FailOnBinary,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("creating checker: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := serve.NewServer(checker, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
