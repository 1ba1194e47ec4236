// Package filter decides which raw misspelling spans are reportable.
package filter

import (
	"sort"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// Rules holds the match sets a span is tested against. Both slices must be
// ordered by start offset and non-overlapping, as produced by matcher.FindMatches.
type Rules struct {
	// Exclude spans always win: a span inside any of them is dropped.
	Exclude []types.TextSpan

	// Include spans restrict reporting when IncludeEnabled is set.
	Include []types.TextSpan

	// IncludeEnabled distinguishes "no inclusion pattern" from "a pattern
	// that matched nothing", which drops every span.
	IncludeEnabled bool
}

// Keep reports whether s survives filtering.
func (r Rules) Keep(s types.Span) bool {
	if contained(s, r.Exclude) {
		return false
	}
	if !r.IncludeEnabled {
		return true
	}
	return contained(s, r.Include)
}

// Filter returns the spans in raw that survive r, preserving input order.
// raw may be in any order.
func Filter(raw []types.Span, r Rules) []types.Span {
	kept := make([]types.Span, 0, len(raw))
	for _, s := range raw {
		if r.Keep(s) {
			kept = append(kept, s)
		}
	}
	return kept
}

// contained reports whether s lies inside one of spans.
// Since spans are sorted and disjoint, only the last span starting at or
// before s.Start can contain it.
func contained(s types.Span, spans []types.TextSpan) bool {
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].Start > s.Start
	})
	if i == 0 {
		return false
	}
	return spans[i-1].Contains(s)
}
