package matcher

import (
	"fmt"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// FindMatches returns every non-empty, non-overlapping match of p in text,
// ordered by start offset. Offsets are character offsets into text.
//
// Zero-width matches are dropped: they contain nothing, and treating them as
// spans would let an empty inclusion pattern admit every misspelling.
func FindMatches(text types.Text, p *Pattern) ([]types.TextSpan, error) {
	runes := text.Runes()

	var spans []types.TextSpan
	m, err := p.re.FindRunesMatch(runes)
	for err == nil && m != nil {
		start, end := m.Index, m.Index+m.Length
		if end > start && (len(spans) == 0 || start >= spans[len(spans)-1].End) {
			spans = append(spans, types.TextSpan{
				Start:   start,
				End:     end,
				Matched: string(runes[start:end]),
			})
		}
		// FindNextMatch steps past an empty match before searching again.
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", p.source, err)
	}
	return spans, nil
}
