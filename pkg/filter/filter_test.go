package filter

import (
	"testing"

	"github.com/praetorian-inc/spellcheck/pkg/matcher"
	"github.com/praetorian-inc/spellcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	url := []types.TextSpan{{Start: 10, End: 30}}
	include := []types.TextSpan{{Start: 0, End: 8}, {Start: 25, End: 50}}

	raw := []types.Span{
		{Start: 2, End: 5},   // inside include only
		{Start: 12, End: 15}, // inside url only
		{Start: 26, End: 29}, // inside url and include
		{Start: 35, End: 40}, // inside include only
		{Start: 52, End: 55}, // outside everything
		{Start: 6, End: 9},   // straddles include boundary
	}

	tests := []struct {
		name  string
		rules Rules
		want  []types.Span
	}{
		{
			name:  "exclusion only",
			rules: Rules{Exclude: url},
			want:  []types.Span{raw[0], raw[3], raw[4], raw[5]},
		},
		{
			name:  "inclusion and exclusion",
			rules: Rules{Exclude: url, Include: include, IncludeEnabled: true},
			want:  []types.Span{raw[0], raw[3]},
		},
		{
			name:  "inclusion enabled without matches drops everything",
			rules: Rules{Exclude: url, IncludeEnabled: true},
			want:  []types.Span{},
		},
		{
			name:  "no rules is identity",
			rules: Rules{},
			want:  raw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(raw, tt.rules))
		})
	}
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	raw := []types.Span{{Start: 40, End: 42}, {Start: 1, End: 3}, {Start: 20, End: 22}}
	got := Filter(raw, Rules{Exclude: []types.TextSpan{{Start: 19, End: 23}}})

	assert.Equal(t, []types.Span{{Start: 40, End: 42}, {Start: 1, End: 3}}, got)
}

func TestFilter_Idempotent(t *testing.T) {
	rules := Rules{
		Exclude:        []types.TextSpan{{Start: 5, End: 9}},
		Include:        []types.TextSpan{{Start: 0, End: 20}},
		IncludeEnabled: true,
	}
	raw := []types.Span{{Start: 0, End: 3}, {Start: 6, End: 8}, {Start: 18, End: 22}, {Start: 10, End: 12}}

	once := Filter(raw, rules)
	twice := Filter(once, rules)
	assert.Equal(t, once, twice)
}

func TestRules_ExclusionWins(t *testing.T) {
	span := types.TextSpan{Start: 0, End: 10}
	rules := Rules{
		Exclude:        []types.TextSpan{span},
		Include:        []types.TextSpan{span},
		IncludeEnabled: true,
	}
	assert.False(t, rules.Keep(types.Span{Start: 2, End: 5}))
}

func TestRules_ContainmentBoundaries(t *testing.T) {
	rules := Rules{Exclude: []types.TextSpan{{Start: 10, End: 20}}}

	assert.False(t, rules.Keep(types.Span{Start: 10, End: 20}), "exact bounds are contained")
	assert.False(t, rules.Keep(types.Span{Start: 10, End: 13}), "shared start")
	assert.False(t, rules.Keep(types.Span{Start: 17, End: 20}), "shared end")
	assert.True(t, rules.Keep(types.Span{Start: 9, End: 12}), "starts before")
	assert.True(t, rules.Keep(types.Span{Start: 18, End: 21}), "ends after")
	assert.True(t, rules.Keep(types.Span{Start: 20, End: 23}), "starts at exclusive end")
}

func TestFilter_URLScenario(t *testing.T) {
	text := types.NewText("See http://example.com/teh for it")
	urls, err := matcher.FindMatches(text, matcher.URL())
	require.NoError(t, err)

	raw := []types.Span{{Start: 23, End: 26, Text: "teh"}}
	require.Equal(t, "teh", text.Slice(23, 26))

	assert.Empty(t, Filter(raw, Rules{Exclude: urls}))
}

func TestFilter_InclusionScenario(t *testing.T) {
	text := types.NewText("speling here # and mistak there")
	include, err := matcher.FindMatches(text, matcher.MustCompile(`#.*`))
	require.NoError(t, err)

	raw := []types.Span{
		{Start: 0, End: 7, Text: "speling"},
		{Start: 19, End: 25, Text: "mistak"},
	}
	require.Equal(t, "mistak", text.Slice(19, 25))

	got := Filter(raw, Rules{Include: include, IncludeEnabled: true})
	assert.Equal(t, []types.Span{raw[1]}, got)
}
