// Package check runs the per-file spell check pipeline:
//
//	decode -> index + match -> filter -> position
//
// and fans it out over many files.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/praetorian-inc/spellcheck/pkg/decode"
	"github.com/praetorian-inc/spellcheck/pkg/filter"
	"github.com/praetorian-inc/spellcheck/pkg/matcher"
	"github.com/praetorian-inc/spellcheck/pkg/provider"
	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// ErrDetection wraps failures of the spell-detection provider or of pattern
// matching over a file.
var ErrDetection = errors.New("detection failed")

// Cache returns a previously computed result for identical content checked
// under the same configuration.
type Cache interface {
	GetFileResult(blobID types.BlobID, fingerprint string) (*types.FileResult, error)
}

// Config for a Checker.
type Config struct {
	// Provider detects raw misspelling spans. Required.
	Provider provider.Provider

	// Include is an optional inclusion expression. Empty disables inclusion filtering.
	Include string

	// Workers bounds concurrent file checks (0 = runtime.NumCPU()).
	Workers int

	// FailOnBinary reports binary files as failures instead of skipping them.
	FailOnBinary bool

	// Cache and Fingerprint enable incremental checking.
	Cache       Cache
	Fingerprint string

	// Logger receives progress and per-file failures. Nil discards.
	Logger *log.Logger
}

// Checker resolves and filters misspellings. It is safe for concurrent use.
type Checker struct {
	provider     provider.Provider
	include      *matcher.Pattern
	exclude      *matcher.Pattern
	workers      int
	failOnBinary bool
	cache        Cache
	fingerprint  string
	logger       *log.Logger
}

// New compiles the inclusion pattern and returns a Checker. A malformed
// pattern fails here, before any file is read.
func New(cfg Config) (*Checker, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("provider is required")
	}

	c := &Checker{
		provider:     cfg.Provider,
		exclude:      matcher.URL(),
		workers:      cfg.Workers,
		failOnBinary: cfg.FailOnBinary,
		cache:        cfg.Cache,
		fingerprint:  cfg.Fingerprint,
		logger:       cfg.Logger,
	}
	if c.workers <= 0 {
		c.workers = runtime.NumCPU()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	if cfg.Include != "" {
		p, err := matcher.Compile(cfg.Include)
		if err != nil {
			return nil, err
		}
		c.include = p
	}
	return c, nil
}

// CheckText runs detection, filtering and position resolution over text.
// Misspellings keep the provider's order.
func (c *Checker) CheckText(ctx context.Context, text types.Text) ([]types.Misspelling, error) {
	raw, err := c.provider.Detect(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDetection, err)
	}

	rules, err := c.rules(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDetection, err)
	}

	n := text.Len()
	valid := raw[:0:0]
	for _, s := range raw {
		if !s.ValidIn(n) {
			c.logger.Debug("dropping out of range span", "span", s.String(), "len", n)
			continue
		}
		valid = append(valid, s)
	}

	kept := filter.Filter(valid, rules)
	index := types.NewLineIndex(text)

	out := make([]types.Misspelling, 0, len(kept))
	for _, s := range kept {
		s.Text = text.Slice(s.Start, s.End)
		out = append(out, types.Misspelling{
			Span:     s,
			Position: index.Resolve(s.Start),
			Text:     s.Text,
		})
	}
	return out, nil
}

// CheckBytes decodes content and checks it. Failures are recorded on the
// result rather than returned.
func (c *Checker) CheckBytes(ctx context.Context, path string, content []byte) types.FileResult {
	res := types.FileResult{Path: path, BlobID: types.ComputeBlobID(content)}

	if cached, ok := c.lookup(res.BlobID); ok {
		cached.Path = path
		c.logger.Debug("reusing cached result", "path", path, "blob", res.BlobID.Hex())
		return *cached
	}

	text, det, err := decode.DetectAndDecode(content)
	res.Encoding, res.Confidence = det.Label, det.Confidence
	if err != nil {
		if errors.Is(err, decode.ErrBinary) && !c.failOnBinary {
			c.logger.Debug("skipping binary file", "path", path)
			res.Skipped = true
			return res
		}
		res.Err = fmt.Errorf("decoding %s: %w", path, err)
		return res
	}
	c.logger.Debug("decoded", "path", path, "encoding", det.Label, "confidence", det.Confidence)

	ms, err := c.CheckText(ctx, text)
	if err != nil {
		res.Err = fmt.Errorf("checking %s: %w", path, err)
		return res
	}
	res.Misspellings = ms
	return res
}

// CheckFile reads and checks one file.
func (c *Checker) CheckFile(ctx context.Context, path string) types.FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.FileResult{Path: path, Err: fmt.Errorf("failed to read file %s: %w", path, err)}
	}
	return c.CheckBytes(ctx, path, content)
}

// rules matches the exclusion and inclusion patterns over text.
func (c *Checker) rules(text types.Text) (filter.Rules, error) {
	exclude, err := matcher.FindMatches(text, c.exclude)
	if err != nil {
		return filter.Rules{}, err
	}
	rules := filter.Rules{Exclude: exclude}
	if c.include == nil {
		return rules, nil
	}

	include, err := matcher.FindMatches(text, c.include)
	if err != nil {
		return filter.Rules{}, err
	}
	rules.Include = include
	rules.IncludeEnabled = true
	return rules, nil
}

func (c *Checker) lookup(id types.BlobID) (*types.FileResult, bool) {
	if c.cache == nil {
		return nil, false
	}
	res, err := c.cache.GetFileResult(id, c.fingerprint)
	if err != nil {
		c.logger.Warn("cache lookup failed", "blob", id.Hex(), "err", err)
		return nil, false
	}
	return res, res != nil
}
