// Package config loads the settings of a spellcheck run from defaults, an
// optional TOML file and command-line overrides.
package config

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/praetorian-inc/spellcheck/pkg/wordlist"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".spellcheck.toml"

// DefaultMaxFileSize bounds the files that are read (10 MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Formats lists the accepted output formats.
var Formats = []string{"human", "azure", "json", "sarif"}

// Config holds every setting of a run.
type Config struct {
	// Files is the glob of files to check. Required.
	Files string `toml:"files"`

	// IncludeRegex restricts reporting to misspellings inside its matches.
	IncludeRegex string `toml:"include_regex"`

	// Allowlist and Dictionary are word-list file paths.
	Allowlist  string `toml:"allowlist"`
	Dictionary string `toml:"dictionary"`

	// Exclude globs are matched against each candidate path.
	Exclude []string `toml:"exclude"`

	Format  string `toml:"format"`
	Offsets bool   `toml:"offsets"`
	Color   string `toml:"color"`
	Workers int    `toml:"workers"`

	MaxFileSize      int64 `toml:"max_file_size"`
	IncludeHidden    bool  `toml:"include_hidden"`
	RespectGitignore bool  `toml:"respect_gitignore"`
	FailOnBinary     bool  `toml:"fail_on_binary"`

	// Output is the result store path. Empty disables the store.
	Output      string `toml:"output"`
	Incremental bool   `toml:"incremental"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Format:           "human",
		Color:            "auto",
		Workers:          runtime.NumCPU(),
		MaxFileSize:      DefaultMaxFileSize,
		RespectGitignore: true,
	}
}

// Load returns the defaults overlaid with the TOML file at path. When path
// is empty, DefaultFileName is used if it exists. Keys the file sets but
// Config does not know are returned so the caller can warn about them.
func Load(path string) (*Config, []string, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error checking config file '%s': %w", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return cfg, unknown, nil
}

// Validate rejects settings a run cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Files == "" {
		errs = append(errs, errors.New("files glob is required"))
	}
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("unknown format %q (want one of %v)", c.Format, Formats))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize))
	}
	if c.Incremental && c.Output == "" {
		errs = append(errs, errors.New("incremental mode needs an output store"))
	}
	return errors.Join(errs...)
}

// Fingerprint identifies the settings that change what gets reported, so
// stored results are only reused under an equivalent configuration. Word
// lists contribute their content, not their path.
func (c *Config) Fingerprint() (string, error) {
	h := sha1.New()
	fmt.Fprintf(h, "include=%q\nfail_on_binary=%t\n", c.IncludeRegex, c.FailOnBinary)

	fmt.Fprint(h, "allowlist=")
	if c.Allowlist == "" {
		fmt.Fprint(h, "none")
	} else if err := hashFile(h, c.Allowlist); err != nil {
		return "", fmt.Errorf("fingerprinting allowlist: %w", err)
	}

	// Without a dictionary the embedded misspelling list decides what is
	// reported, so a binary shipping a different list gets a new fingerprint.
	fmt.Fprint(h, "\ndictionary=")
	if c.Dictionary == "" {
		data, err := builtinList()
		if err != nil {
			return "", fmt.Errorf("fingerprinting builtin list: %w", err)
		}
		fmt.Fprint(h, "builtin:")
		h.Write(data)
	} else if err := hashFile(h, c.Dictionary); err != nil {
		return "", fmt.Errorf("fingerprinting dictionary: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// builtinList is swapped in tests.
var builtinList = func() ([]byte, error) {
	return wordlist.NewLoader().ReadBuiltin(wordlist.Misspellings)
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
