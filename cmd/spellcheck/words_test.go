package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWordsList(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	wordsPath = ""
	wordsFormat = "table"

	require.NoError(t, runWordsList(cmd, []string{}))

	output := buf.String()
	assert.Contains(t, output, "misspellings")
	assert.Contains(t, output, "recieve")
}

func TestRunWordsListJSON(t *testing.T) {
	workspace(t, map[string]string{"team.txt": "# team words\nkubectl\nhelm\n"})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	wordsPath = "team.txt"
	wordsFormat = "json"
	defer func() { wordsPath, wordsFormat = "", "table" }()

	require.NoError(t, runWordsList(cmd, []string{}))

	var list struct {
		Name  string   `json:"name"`
		Words []string `json:"words"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &list))
	assert.Equal(t, "team", list.Name)
	assert.Equal(t, []string{"kubectl", "helm"}, list.Words)
}

func TestRunWordsList_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	wordsPath = ""
	wordsFormat = "xml"
	defer func() { wordsFormat = "table" }()

	assert.Error(t, runWordsList(cmd, []string{}))
}
