package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "spellcheck.toml", `
files = "docs/**/*.md"
include_regex = "<!-- spell -->.*"
exclude = ["docs/vendor/**"]
format = "azure"
workers = 2
respect_gitignore = false
colour = "never"
`)

	cfg, unknown, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "docs/**/*.md", cfg.Files)
	assert.Equal(t, "<!-- spell -->.*", cfg.IncludeRegex)
	assert.Equal(t, []string{"docs/vendor/**"}, cfg.Exclude)
	assert.Equal(t, "azure", cfg.Format)
	assert.Equal(t, 2, cfg.Workers)
	assert.False(t, cfg.RespectGitignore)
	// Unset keys keep their defaults
	assert.Equal(t, DefaultMaxFileSize, cfg.MaxFileSize)
	assert.Equal(t, "auto", cfg.Color)

	assert.Equal(t, []string{"colour"}, unknown)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, unknown, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, unknown)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultFileName, `files = "*.txt"`)
	t.Chdir(dir)

	cfg, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "*.txt", cfg.Files)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.toml", `files = [`)
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "missing glob", modify: func(c *Config) { c.Files = "" }, wantErr: "files glob is required"},
		{name: "unknown format", modify: func(c *Config) { c.Format = "xml" }, wantErr: "unknown format"},
		{name: "negative workers", modify: func(c *Config) { c.Workers = -1 }, wantErr: "workers must not be negative"},
		{name: "negative size", modify: func(c *Config) { c.MaxFileSize = -1 }, wantErr: "max_file_size"},
		{name: "incremental without store", modify: func(c *Config) { c.Incremental = true }, wantErr: "incremental mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Files = "*.md"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	allow := writeFile(t, dir, "allow.txt", "kubectl\n")

	base := Default()
	base.Files = "*.md"
	base.Allowlist = allow

	fp1, err := base.Fingerprint()
	require.NoError(t, err)
	assert.Len(t, fp1, 40)

	// Settings that do not affect results leave it unchanged
	other := *base
	other.Workers = 99
	other.Format = "json"
	fp2, err := other.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)

	other.IncludeRegex = "x"
	fp3, err := other.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)

	// Word list content matters
	writeFile(t, dir, "allow.txt", "kubectl\nhelm\n")
	fp4, err := base.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp4)

	base.Dictionary = filepath.Join(dir, "missing.txt")
	_, err = base.Fingerprint()
	assert.Error(t, err)
}

func TestFingerprint_BuiltinListContent(t *testing.T) {
	orig := builtinList
	defer func() { builtinList = orig }()

	cfg := Default()
	cfg.Files = "*.md"

	builtinList = func() ([]byte, error) { return []byte("words: [teh]\n"), nil }
	fp1, err := cfg.Fingerprint()
	require.NoError(t, err)

	// A binary shipping a different list must not reuse old results
	builtinList = func() ([]byte, error) { return []byte("words: [teh, recieve]\n"), nil }
	fp2, err := cfg.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp2)

	// A configured dictionary replaces the builtin list entirely
	cfg.Dictionary = writeFile(t, t.TempDir(), "dict.txt", "the\n")
	builtinList = func() ([]byte, error) { return nil, assert.AnError }
	_, err = cfg.Fingerprint()
	require.NoError(t, err)

	cfg.Dictionary = ""
	_, err = cfg.Fingerprint()
	assert.ErrorIs(t, err, assert.AnError)
}
