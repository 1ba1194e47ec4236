package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/praetorian-inc/spellcheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func misspelling(start, line, column int, text string) types.Misspelling {
	return types.Misspelling{
		Span:     types.Span{Start: start, End: start + len([]rune(text)), Text: text},
		Position: types.Position{Line: line, Column: column},
		Text:     text,
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		results []types.FileResult
		want    types.Outcome
	}{
		{
			name:    "no files",
			results: nil,
			want:    types.Outcome{},
		},
		{
			name: "no misspellings succeeds",
			results: []types.FileResult{
				{Path: "a"},
				{Path: "b", Misspellings: []types.Misspelling{}},
			},
			want: types.Outcome{Files: 2},
		},
		{
			name: "counts sum across files",
			results: []types.FileResult{
				{Path: "a", Misspellings: []types.Misspelling{misspelling(0, 1, 1, "teh")}},
				{Path: "b"},
				{Path: "c", Misspellings: []types.Misspelling{misspelling(0, 1, 1, "teh"), misspelling(4, 1, 5, "adn")}},
			},
			want: types.Outcome{Failed: true, ErrorCount: 3, Files: 3},
		},
		{
			name: "file errors fail without counting as misspellings",
			results: []types.FileResult{
				{Path: "a", Err: errors.New("binary content")},
				{Path: "b"},
			},
			want: types.Outcome{Failed: true, FileErrors: 1, Files: 2},
		},
		{
			name:    "skipped files succeed",
			results: []types.FileResult{{Path: "a", Skipped: true}},
			want:    types.Outcome{Files: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.results))
		})
	}
}

func TestRender(t *testing.T) {
	results := []types.FileResult{
		{Path: "a.md", Misspellings: []types.Misspelling{misspelling(0, 1, 1, "Teh"), misspelling(11, 2, 6, "mistak")}},
		{Path: "b.md", Misspellings: []types.Misspelling{}},
		{Path: "c.bin", Err: errors.New("binary content")},
		{Path: "d.bin", Skipped: true},
	}

	rec := &Recorder{}
	outcome := Render(rec, results, Positions)

	assert.Equal(t, []Entry{
		{Level: "error", Message: "Misspellings in a.md"},
		{Level: "error", Message: "1:1 Misspelling 'Teh'"},
		{Level: "error", Message: "2:6 Misspelling 'mistak'"},
		{Level: "error", Message: "Failed to check c.bin: binary content"},
		{Level: "warning", Message: "Skipped binary file d.bin"},
	}, rec.Entries)

	assert.True(t, rec.Completed)
	assert.True(t, rec.Failed)
	assert.Equal(t, "2 misspellings detected, 1 files could not be checked", rec.Summary)
	assert.Equal(t, types.Outcome{Failed: true, ErrorCount: 2, FileErrors: 1, Files: 4}, outcome)
}

func TestRender_Offsets(t *testing.T) {
	rec := &Recorder{}
	Render(rec, []types.FileResult{
		{Path: "a.md", Misspellings: []types.Misspelling{misspelling(11, 2, 6, "mistak")}},
	}, Offsets)

	assert.Equal(t, []string{"Misspellings in a.md", "11-17 Misspelling 'mistak'"}, rec.Errors())
}

func TestRender_Clean(t *testing.T) {
	rec := &Recorder{}
	outcome := Render(rec, []types.FileResult{{Path: "a.md"}}, Positions)

	assert.Empty(t, rec.Entries)
	assert.True(t, rec.Completed)
	assert.False(t, rec.Failed)
	assert.Equal(t, "0 misspellings detected", rec.Summary)
	assert.False(t, outcome.Failed)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	outcome, err := WriteJSON(&buf, []types.FileResult{
		{Path: "a.md", Misspellings: []types.Misspelling{misspelling(0, 1, 1, "Teh")}},
		{Path: "b.bin", Err: errors.New("binary content")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.ErrorCount)

	var parsed struct {
		Outcome types.Outcome `json:"outcome"`
		Files   []struct {
			Path         string              `json:"path"`
			Misspellings []types.Misspelling `json:"misspellings"`
			Error        string              `json:"error"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	assert.Equal(t, outcome, parsed.Outcome)
	require.Len(t, parsed.Files, 2)
	assert.Equal(t, "Teh", parsed.Files[0].Misspellings[0].Text)
	assert.Equal(t, "binary content", parsed.Files[1].Error)
	assert.NotNil(t, parsed.Files[1].Misspellings)
}

func TestWriteSARIF(t *testing.T) {
	var buf bytes.Buffer
	outcome, err := WriteSARIF(&buf, []types.FileResult{
		{Path: "a.md", Misspellings: []types.Misspelling{misspelling(0, 1, 1, "Teh")}},
	})
	require.NoError(t, err)
	assert.True(t, outcome.Failed)
	assert.Contains(t, buf.String(), `"version": "2.1.0"`)
	assert.Contains(t, buf.String(), "Misspelling 'Teh'")
}
