// Package provider defines the spell-detection boundary and ships a few
// implementations of it.
//
// A Provider reports raw character spans it believes are misspelled. The
// check pipeline resolves and filters those spans; providers never see the
// inclusion or exclusion rules.
package provider

import (
	"context"
	"slices"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// Provider detects potentially misspelled spans in text.
// Returned spans may be in any order.
type Provider interface {
	Detect(ctx context.Context, text types.Text) ([]types.Span, error)
}

// Func adapts a function to the Provider interface.
type Func func(ctx context.Context, text types.Text) ([]types.Span, error)

// Detect calls f.
func (f Func) Detect(ctx context.Context, text types.Text) ([]types.Span, error) {
	return f(ctx, text)
}

// Static always returns the same spans. Useful for tests.
type Static []types.Span

// Detect returns a copy of s.
func (s Static) Detect(ctx context.Context, text types.Text) ([]types.Span, error) {
	return slices.Clone(s), nil
}

// Multi runs each provider in order and merges their spans. A span reported
// by more than one provider is kept once, in the position it was first seen.
type Multi []Provider

// Detect returns the union of all providers' spans.
func (m Multi) Detect(ctx context.Context, text types.Text) ([]types.Span, error) {
	type key struct{ start, end int }

	var out []types.Span
	seen := make(map[key]bool)
	for _, p := range m {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		spans, err := p.Detect(ctx, text)
		if err != nil {
			return nil, err
		}
		for _, s := range spans {
			k := key{s.Start, s.End}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, s)
		}
	}
	return out, nil
}
