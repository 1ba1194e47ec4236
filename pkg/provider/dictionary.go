package provider

import (
	"context"
	"fmt"

	"github.com/praetorian-inc/spellcheck/pkg/types"
	"github.com/praetorian-inc/spellcheck/pkg/wordlist"
)

// Dictionary flags every checkable word that is not in its word list.
type Dictionary struct {
	known map[string]struct{}
	allow Allowlist
}

// NewDictionary builds a dictionary provider from known words.
func NewDictionary(known []string, opts ...Option) *Dictionary {
	o := buildOptions(opts)
	d := &Dictionary{known: make(map[string]struct{}, len(known)), allow: o.allow}
	for _, w := range known {
		d.known[fold(w)] = struct{}{}
	}
	return d
}

// LoadDictionary reads a word list file (one word per line, or YAML).
func LoadDictionary(path string, opts ...Option) (*Dictionary, error) {
	list, err := wordlist.NewLoader().LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	if len(list.Words) == 0 {
		return nil, fmt.Errorf("loading dictionary: %s has no words", path)
	}
	return NewDictionary(list.Words, opts...), nil
}

// Len returns the number of distinct known words.
func (d *Dictionary) Len() int {
	return len(d.known)
}

// Detect returns spans in text order.
func (d *Dictionary) Detect(ctx context.Context, text types.Text) ([]types.Span, error) {
	var spans []types.Span
	for _, tok := range words(text.String()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := d.known[fold(tok.word)]; ok {
			continue
		}
		if d.allow.Contains(tok.word) {
			continue
		}
		spans = append(spans, types.Span{Start: tok.start, End: tok.end, Text: tok.word})
	}
	return spans, nil
}
