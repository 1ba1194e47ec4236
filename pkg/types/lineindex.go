package types

import "sort"

// LineIndex holds the offsets of every line terminator in a Text, ascending.
type LineIndex []int

// NewLineIndex records the offset of each '\n' in text.
func NewLineIndex(text Text) LineIndex {
	var idx LineIndex
	for i, r := range text.runes {
		if r == '\n' {
			idx = append(idx, i)
		}
	}
	return idx
}

// Resolve maps a character offset to its 1-based line and column.
//
// The line is one more than the number of terminators strictly before offset.
// An offset sitting on a terminator belongs to the line that terminator ends.
func (idx LineIndex) Resolve(offset int) Position {
	// i is the number of breaks strictly before offset.
	i := sort.SearchInts(idx, offset)
	if i == 0 {
		return Position{Line: 1, Column: offset + 1}
	}
	return Position{Line: i + 1, Column: offset - idx[i-1]}
}

// Lines returns the number of lines in the indexed text.
func (idx LineIndex) Lines() int {
	return len(idx) + 1
}
