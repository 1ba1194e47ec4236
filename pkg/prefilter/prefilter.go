// Package prefilter finds which of a fixed set of keywords occur in content
// using a single Aho-Corasick pass.
package prefilter

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Prefilter matches lowercase keywords case-insensitively.
type Prefilter struct {
	mu       sync.Mutex // Matcher.Match updates per-node counters
	matcher  *ahocorasick.Matcher
	keywords []string // keyword at each matcher index
}

// New builds a prefilter over keywords. Duplicates and empty entries are ignored.
func New(keywords []string) *Prefilter {
	pf := &Prefilter{}

	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		pf.keywords = append(pf.keywords, k)
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}
	return pf
}

// Len returns the number of distinct keywords.
func (pf *Prefilter) Len() int {
	return len(pf.keywords)
}

// Hits returns the set of keywords occurring anywhere in content.
// Hits are substring matches; callers check word boundaries themselves.
func (pf *Prefilter) Hits(content string) map[string]bool {
	if pf.matcher == nil || content == "" {
		return nil
	}

	lower := []byte(strings.ToLower(content))

	pf.mu.Lock()
	idx := pf.matcher.Match(lower)
	pf.mu.Unlock()

	if len(idx) == 0 {
		return nil
	}
	hits := make(map[string]bool, len(idx))
	for _, i := range idx {
		hits[pf.keywords[i]] = true
	}
	return hits
}
