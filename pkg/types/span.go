package types

import "fmt"

// Span is a character range [Start, End) - half-open interval.
// Spans come from a spell-detection provider; Text is optional on input
// and always filled once the span has been resolved against a Text.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text,omitempty"`
}

// Len returns End - Start.
func (s Span) Len() int {
	return s.End - s.Start
}

// ValidIn reports whether the span is non-empty and lies within a text of length n.
func (s Span) ValidIn(n int) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= n
}

// String formats the span as "start-end".
func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// TextSpan is a pattern match over a Text. Matched is exactly text[Start:End].
type TextSpan struct {
	Start   int
	End     int
	Matched string
}

// Contains reports whether s lies entirely inside t.
func (t TextSpan) Contains(s Span) bool {
	return s.Start >= t.Start && s.End <= t.End
}

// Position is a line:column point (1-based).
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
