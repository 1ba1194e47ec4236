package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzureSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewAzureSink(&buf)

	s.Error("Misspellings in a.md")
	s.Warning("100% odd\nline")
	s.Complete(true, "2 misspellings detected")

	assert.Equal(t,
		"##vso[task.logissue type=error]Misspellings in a.md\n"+
			"##vso[task.logissue type=warning]100%AZP25 odd%0Aline\n"+
			"##vso[task.complete result=Failed;]2 misspellings detected\n",
		buf.String())

	buf.Reset()
	s.Complete(false, "0 misspellings detected")
	assert.Equal(t, "##vso[task.complete result=Succeeded;]0 misspellings detected\n", buf.String())
}

func TestHumanSink_NoColor(t *testing.T) {
	var buf bytes.Buffer
	s := NewHumanSink(&buf, false)

	s.Error("1:1 Misspelling 'Teh'")
	s.Warning("Skipped binary file a.bin")
	s.Complete(true, "1 misspellings detected")

	assert.Equal(t,
		"error: 1:1 Misspelling 'Teh'\n"+
			"warning: Skipped binary file a.bin\n"+
			"\nFAILED 1 misspellings detected\n",
		buf.String())
}

func TestHumanSink_Color(t *testing.T) {
	var buf bytes.Buffer
	s := NewHumanSink(&buf, true)
	s.Complete(false, "0 misspellings detected")

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "0 misspellings detected")
}

func TestColorEnabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	on, err := ColorEnabled("always", f)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = ColorEnabled("never", f)
	require.NoError(t, err)
	assert.False(t, on)

	// A regular file is never a terminal
	on, err = ColorEnabled("auto", f)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = ColorEnabled("sometimes", f)
	assert.Error(t, err)
}
