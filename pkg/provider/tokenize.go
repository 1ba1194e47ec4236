package provider

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// token is a word candidate located by character offsets.
type token struct {
	start int
	end   int
	word  string
}

// words splits s into Unicode word segments (UAX #29) and keeps the ones
// worth spell checking: at least two characters, at least one letter, no
// digits or underscores, and no internal capitals (camelCase identifiers).
func words(s string) []token {
	var (
		out   []token
		state = -1
		pos   int
		word  string
	)
	for len(s) > 0 {
		word, s, state = uniseg.FirstWordInString(s, state)
		n := utf8.RuneCountInString(word)
		if checkable(word, n) {
			out = append(out, token{start: pos, end: pos + n, word: word})
		}
		pos += n
	}
	return out
}

func checkable(word string, n int) bool {
	if n < 2 {
		return false
	}
	letter := false
	for i, r := range word {
		switch {
		case unicode.IsDigit(r), r == '_':
			return false
		case unicode.IsUpper(r) && i > 0:
			return false
		case unicode.IsLetter(r):
			letter = true
		}
	}
	return letter
}

// fold is the lookup key for a word: lowercase, NFC, and without a trailing
// possessive.
func fold(word string) string {
	w := norm.NFC.String(strings.ToLower(word))
	w = strings.TrimSuffix(w, "'s")
	w = strings.TrimSuffix(w, "’s")
	return w
}
