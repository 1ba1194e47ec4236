// Package spellcheck finds misspelled words in text and reports them by line
// and column.
//
// Misspellings inside URLs are never reported, and an optional inclusion
// regex restricts reporting to the regions of the text it matches.
//
// # Basic Usage
//
// Create a checker with the built-in misspelling list and check a string:
//
//	checker, err := spellcheck.NewChecker()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	misspellings, err := checker.CheckString("Teh quick fox")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, m := range misspellings {
//	    fmt.Printf("%s Misspelling '%s'\n", m.Position, m.Text)
//	}
//
// # With a Dictionary
//
// Flag every word a dictionary does not know, except allowlisted ones:
//
//	checker, err := spellcheck.NewChecker(
//	    spellcheck.WithDictionary(words),
//	    spellcheck.WithAllowlist("kubectl", "gRPC"),
//	    spellcheck.WithIncludeRegex(`(?s)<!-- spellcheck -->.*`),
//	)
package spellcheck

import (
	"context"
	"fmt"

	"github.com/praetorian-inc/spellcheck/pkg/check"
	"github.com/praetorian-inc/spellcheck/pkg/provider"
	"github.com/praetorian-inc/spellcheck/pkg/report"
	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/spellcheck" without subpackages.
type (
	// Misspelling is a reported span with its resolved position.
	Misspelling = types.Misspelling

	// Span is a half-open range of character offsets.
	Span = types.Span

	// Position is a 1-based line and column.
	Position = types.Position

	// FileResult is the outcome of checking one file.
	FileResult = types.FileResult

	// Outcome summarizes a run.
	Outcome = types.Outcome

	// Provider detects raw misspelling spans in text.
	Provider = provider.Provider
)

// Checker checks text and files for misspellings. It is safe for
// concurrent use.
type Checker struct {
	checker *check.Checker
}

// checkerConfig holds checker configuration.
type checkerConfig struct {
	provider   provider.Provider
	dictionary []string
	allowlist  []string
	include    string
	workers    int
}

// Option configures a Checker.
type Option func(*checkerConfig)

// WithProvider uses a custom detection provider. It takes precedence over
// WithDictionary.
func WithProvider(p Provider) Option {
	return func(c *checkerConfig) {
		c.provider = p
	}
}

// WithDictionary reports every word not in words.
// If not specified, the built-in list of common misspellings is used.
func WithDictionary(words []string) Option {
	return func(c *checkerConfig) {
		c.dictionary = words
	}
}

// WithAllowlist accepts words regardless of the provider.
func WithAllowlist(words ...string) Option {
	return func(c *checkerConfig) {
		c.allowlist = append(c.allowlist, words...)
	}
}

// WithIncludeRegex only reports misspellings inside matches of expr.
func WithIncludeRegex(expr string) Option {
	return func(c *checkerConfig) {
		c.include = expr
	}
}

// WithWorkers sets how many files CheckFiles checks at once.
// Default is the number of CPUs.
func WithWorkers(n int) Option {
	return func(c *checkerConfig) {
		c.workers = n
	}
}

// NewChecker creates a new Checker with the given options.
func NewChecker(opts ...Option) (*Checker, error) {
	cfg := &checkerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	p := cfg.provider
	if p == nil {
		var popts []provider.Option
		if len(cfg.allowlist) > 0 {
			popts = append(popts, provider.WithAllowlist(provider.NewAllowlist(cfg.allowlist...)))
		}

		if cfg.dictionary != nil {
			p = provider.NewDictionary(cfg.dictionary, popts...)
		} else {
			common, err := provider.NewCommon(popts...)
			if err != nil {
				return nil, fmt.Errorf("loading misspelling list: %w", err)
			}
			p = common
		}
	}

	c, err := check.New(check.Config{
		Provider: p,
		Include:  cfg.include,
		Workers:  cfg.workers,
	})
	if err != nil {
		return nil, err
	}
	return &Checker{checker: c}, nil
}

// CheckString checks text and returns its misspellings in provider order.
func (c *Checker) CheckString(text string) ([]Misspelling, error) {
	return c.checker.CheckText(context.Background(), types.NewText(text))
}

// CheckBytes decodes content, detecting its encoding, and checks it.
func (c *Checker) CheckBytes(path string, content []byte) FileResult {
	return c.checker.CheckBytes(context.Background(), path, content)
}

// CheckFiles checks files concurrently. Results follow the order of paths;
// per-file failures are recorded on each result and counted in the outcome.
func (c *Checker) CheckFiles(ctx context.Context, paths []string) ([]FileResult, Outcome, error) {
	results, err := c.checker.Run(ctx, paths)
	if err != nil {
		return nil, Outcome{}, err
	}
	return results, report.Aggregate(results), nil
}
