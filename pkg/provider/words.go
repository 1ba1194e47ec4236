package provider

import (
	"context"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// Words flags every occurrence of a fixed set of words. It is deterministic
// and needs no dictionary, which makes it the provider of choice in tests.
type Words struct {
	flagged map[string]bool
	allow   Allowlist
}

// NewWords flags the given words (compared case-insensitively).
func NewWords(words []string, opts ...Option) *Words {
	o := buildOptions(opts)
	w := &Words{flagged: make(map[string]bool, len(words)), allow: o.allow}
	for _, word := range words {
		w.flagged[fold(word)] = true
	}
	return w
}

// Detect returns spans in text order.
func (w *Words) Detect(ctx context.Context, text types.Text) ([]types.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var spans []types.Span
	for _, tok := range words(text.String()) {
		if w.flagged[fold(tok.word)] && !w.allow.Contains(tok.word) {
			spans = append(spans, types.Span{Start: tok.start, End: tok.end, Text: tok.word})
		}
	}
	return spans, nil
}
