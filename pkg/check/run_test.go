package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/spellcheck/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// regexp2 starts one process-wide clock goroutine the first time a pattern
// with a match timeout runs.
var ignoreMatchClock = goleak.IgnoreAnyFunction("github.com/dlclark/regexp2.runClock")

func writeFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
	}
	return dir
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreMatchClock)

	dir := writeFiles(t, map[string][]byte{
		"a.md":  []byte("Teh quick fox\nteh end"),
		"b.md":  []byte("all good here"),
		"c.bin": []byte("teh\x00binary"),
		"d.md":  []byte("see https://example.com/teh"),
	})
	paths := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "c.bin"),
		filepath.Join(dir, "missing.md"),
		filepath.Join(dir, "d.md"),
	}

	c := newChecker(t, Config{
		Provider:     provider.NewWords([]string{"teh"}),
		Workers:      3,
		FailOnBinary: true,
	})

	results, err := c.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}

	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Misspellings, 2)
	assert.Equal(t, 2, results[0].Misspellings[1].Position.Line)

	assert.NoError(t, results[1].Err)
	assert.Empty(t, results[1].Misspellings)

	assert.Error(t, results[2].Err)
	assert.Error(t, results[3].Err)

	assert.NoError(t, results[4].Err)
	assert.Empty(t, results[4].Misspellings)
}

func TestRun_OrderIndependentOfWorkers(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreMatchClock)

	files := map[string][]byte{}
	var paths []string
	for i := range 40 {
		name := fmt.Sprintf("f%02d.txt", i)
		files[name] = []byte(fmt.Sprintf("line %d teh", i))
	}
	dir := writeFiles(t, files)
	for i := range 40 {
		paths = append(paths, filepath.Join(dir, fmt.Sprintf("f%02d.txt", i)))
	}

	for _, workers := range []int{1, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			c := newChecker(t, Config{Provider: provider.NewWords([]string{"teh"}), Workers: workers})
			results, err := c.Run(context.Background(), paths)
			require.NoError(t, err)
			for i, r := range results {
				assert.Equal(t, paths[i], r.Path)
				require.Len(t, r.Misspellings, 1)
			}
		})
	}
}

func TestRun_Empty(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreMatchClock)

	c := newChecker(t, Config{Provider: provider.Static(nil)})
	results, err := c.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRun_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreMatchClock)

	dir := writeFiles(t, map[string][]byte{"a.txt": []byte("teh")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newChecker(t, Config{Provider: provider.NewWords([]string{"teh"})})
	results, err := c.Run(ctx, []string{filepath.Join(dir, "a.txt")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
