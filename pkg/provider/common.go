package provider

import (
	"context"
	"fmt"

	"github.com/praetorian-inc/spellcheck/pkg/prefilter"
	"github.com/praetorian-inc/spellcheck/pkg/types"
	"github.com/praetorian-inc/spellcheck/pkg/wordlist"
)

// Common flags well known misspellings from the embedded list.
// Content is first screened with an Aho-Corasick pass so texts without any
// candidate are never tokenized.
type Common struct {
	pf    *prefilter.Prefilter
	allow Allowlist
}

// NewCommon loads the built-in misspelling list.
func NewCommon(opts ...Option) (*Common, error) {
	list, err := wordlist.NewLoader().LoadBuiltin(wordlist.Misspellings)
	if err != nil {
		return nil, fmt.Errorf("loading misspelling list: %w", err)
	}
	return NewCommonFromList(list.Words, opts...), nil
}

// NewCommonFromList uses words instead of the built-in list.
func NewCommonFromList(words []string, opts ...Option) *Common {
	o := buildOptions(opts)
	return &Common{pf: prefilter.New(words), allow: o.allow}
}

// Detect returns spans in text order.
func (c *Common) Detect(ctx context.Context, text types.Text) ([]types.Span, error) {
	s := text.String()
	hits := c.pf.Hits(s)
	if len(hits) == 0 {
		return nil, nil
	}

	var spans []types.Span
	for _, tok := range words(s) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if hits[fold(tok.word)] && !c.allow.Contains(tok.word) {
			spans = append(spans, types.Span{Start: tok.start, End: tok.end, Text: tok.word})
		}
	}
	return spans, nil
}
