package provider

import (
	"github.com/praetorian-inc/spellcheck/pkg/wordlist"
)

// Allowlist holds additional accepted words.
type Allowlist map[string]struct{}

// NewAllowlist builds an allowlist from words.
func NewAllowlist(words ...string) Allowlist {
	a := make(Allowlist, len(words))
	a.Add(words...)
	return a
}

// LoadAllowlist reads a plain text or YAML word list.
func LoadAllowlist(path string) (Allowlist, error) {
	list, err := wordlist.NewLoader().LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewAllowlist(list.Words...), nil
}

// Add accepts more words.
func (a Allowlist) Add(words ...string) {
	for _, w := range words {
		a[fold(w)] = struct{}{}
	}
}

// Contains reports whether word is accepted. A nil allowlist accepts nothing.
func (a Allowlist) Contains(word string) bool {
	_, ok := a[fold(word)]
	return ok
}
