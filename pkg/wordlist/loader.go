// Package wordlist loads word lists used by spell-detection providers:
// the embedded misspelling list, dictionaries and user allowlists.
package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Builtin list names.
const (
	Misspellings = "misspellings"
)

// List is a named set of words in file order.
type List struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Words       []string `json:"words"`
}

// Loader reads word lists from YAML or plain text.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in lists
}

// NewLoader creates a loader backed by the built-in lists.
func NewLoader() *Loader {
	return &Loader{fs: builtinListsFS}
}

// NewLoaderWithFS creates a loader with a custom filesystem for built-ins.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{fs: fsys}
}

// LoadYAML parses a YAML word list. A bare YAML sequence is accepted as well
// as the mapping form with a "words" key.
func (l *Loader) LoadYAML(data []byte) (*List, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return &List{}, nil
	}

	var yl yamlList
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		if err := node.Content[0].Decode(&yl.Words); err != nil {
			return nil, fmt.Errorf("failed to decode word sequence: %w", err)
		}
	case yaml.MappingNode:
		if err := node.Content[0].Decode(&yl); err != nil {
			return nil, fmt.Errorf("failed to decode word list: %w", err)
		}
	default:
		return nil, fmt.Errorf("expected a word list, got YAML %s", kindName(node.Content[0].Kind))
	}

	return &List{
		Name:        yl.Name,
		Description: yl.Description,
		Words:       cleanWords(yl.Words),
	}, nil
}

// LoadText parses one word per line. Blank lines and lines starting with '#'
// are skipped; anything after the first whitespace on a line is ignored.
func (l *Loader) LoadText(data []byte) (*List, error) {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			line = line[:i]
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return &List{Words: words}, nil
}

// LoadFile loads a list from disk, choosing the format by extension.
func (l *Loader) LoadFile(p string) (*List, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", p, err)
	}

	var list *List
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yml", ".yaml":
		list, err = l.LoadYAML(data)
	default:
		list, err = l.LoadText(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	if list.Name == "" {
		list.Name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return list, nil
}

// ReadBuiltin returns the raw content of an embedded list.
func (l *Loader) ReadBuiltin(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.fs, path.Join("lists", name+".yml"))
	if err != nil {
		return nil, fmt.Errorf("unknown builtin list %q: %w", name, err)
	}
	return data, nil
}

// LoadBuiltin loads an embedded list by name.
func (l *Loader) LoadBuiltin(name string) (*List, error) {
	data, err := l.ReadBuiltin(name)
	if err != nil {
		return nil, err
	}
	list, err := l.LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("builtin list %s: %w", name, err)
	}
	if list.Name == "" {
		list.Name = name
	}
	return list, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func cleanWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
