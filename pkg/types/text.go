package types

// Text is decoded file content addressed by character (rune) offset.
// All spans and positions in this module are measured against a Text.
type Text struct {
	runes []rune
}

// NewText decodes s into a Text.
func NewText(s string) Text {
	return Text{runes: []rune(s)}
}

// TextFromRunes wraps r without copying. The caller must not modify r afterwards.
func TextFromRunes(r []rune) Text {
	return Text{runes: r}
}

// Len returns the number of characters.
func (t Text) Len() int {
	return len(t.runes)
}

// Runes exposes the underlying characters. Callers must treat the slice as read-only.
func (t Text) Runes() []rune {
	return t.runes
}

// Slice returns the characters in [start, end) as a string.
// Out of range bounds are clamped.
func (t Text) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(t.runes) {
		end = len(t.runes)
	}
	if start >= end {
		return ""
	}
	return string(t.runes[start:end])
}

// String returns the whole text.
func (t Text) String() string {
	return string(t.runes)
}
