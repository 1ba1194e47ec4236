package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_ValidIn(t *testing.T) {
	tests := []struct {
		name string
		span Span
		n    int
		want bool
	}{
		{name: "inside", span: Span{Start: 0, End: 3}, n: 5, want: true},
		{name: "ends at text end", span: Span{Start: 2, End: 5}, n: 5, want: true},
		{name: "empty", span: Span{Start: 2, End: 2}, n: 5, want: false},
		{name: "reversed", span: Span{Start: 3, End: 1}, n: 5, want: false},
		{name: "past end", span: Span{Start: 3, End: 6}, n: 5, want: false},
		{name: "negative start", span: Span{Start: -1, End: 2}, n: 5, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.span.ValidIn(tt.n))
		})
	}
}

func TestTextSpan_Contains(t *testing.T) {
	outer := TextSpan{Start: 4, End: 22}

	assert.True(t, outer.Contains(Span{Start: 4, End: 22}), "equal bounds")
	assert.True(t, outer.Contains(Span{Start: 19, End: 22}), "suffix")
	assert.True(t, outer.Contains(Span{Start: 4, End: 8}), "prefix")
	assert.False(t, outer.Contains(Span{Start: 3, End: 8}), "starts before")
	assert.False(t, outer.Contains(Span{Start: 20, End: 23}), "ends after")
	assert.False(t, outer.Contains(Span{Start: 30, End: 33}), "disjoint")
}

func TestText_Slice(t *testing.T) {
	text := NewText("naïve café")

	assert.Equal(t, 10, text.Len())
	assert.Equal(t, "naïve", text.Slice(0, 5))
	assert.Equal(t, "café", text.Slice(6, 10))
	assert.Equal(t, "café", text.Slice(6, 99))
	assert.Equal(t, "", text.Slice(5, 5))
	assert.Equal(t, "naïve café", text.String())
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "3:14", Position{Line: 3, Column: 14}.String())
	assert.Equal(t, "7-10", Span{Start: 7, End: 10}.String())
}
