// Package decode turns raw file bytes into a types.Text.
//
// Detection follows the same order a browser would: byte order mark, then
// UTF-8 validity, then an HTML meta prescan with a windows-1252 fallback.
// Content with NUL bytes and no byte order mark is treated as binary.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/praetorian-inc/spellcheck/pkg/types"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrBinary is returned for content that is not text in any supported encoding.
	ErrBinary = errors.New("binary content")

	// ErrUnknownEncoding is returned when a label names no known encoding.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// sniffLen bounds how much content is inspected for NUL bytes.
const sniffLen = 8192

// Detection is the encoding guess for a piece of content.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

var boms = []struct {
	mark  []byte
	label string
}{
	{mark: []byte{0xEF, 0xBB, 0xBF}, label: "utf-8"},
	{mark: []byte{0xFE, 0xFF}, label: "utf-16be"},
	{mark: []byte{0xFF, 0xFE}, label: "utf-16le"},
}

// Detect guesses the encoding of content.
func Detect(content []byte) (Detection, error) {
	for _, b := range boms {
		if bytes.HasPrefix(content, b.mark) {
			return Detection{Label: b.label, Confidence: 1}, nil
		}
	}

	if isBinary(content) {
		return Detection{}, ErrBinary
	}

	if utf8.Valid(content) {
		if isASCII(content) {
			return Detection{Label: "utf-8", Confidence: 1}, nil
		}
		return Detection{Label: "utf-8", Confidence: 0.99}, nil
	}

	_, name, certain := charset.DetermineEncoding(content, "")
	if name == "" {
		return Detection{}, fmt.Errorf("%w: no candidate encoding", ErrUnknownEncoding)
	}
	if certain {
		return Detection{Label: name, Confidence: 0.9}, nil
	}
	return Detection{Label: name, Confidence: 0.5}, nil
}

// Decode converts content from the named encoding. A leading byte order mark
// is consumed and takes precedence over label.
func Decode(content []byte, label string) (types.Text, error) {
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return types.Text{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), content)
	if err != nil {
		return types.Text{}, fmt.Errorf("decoding %s: %w", label, err)
	}
	return types.NewText(string(out)), nil
}

// DetectAndDecode runs Detect followed by Decode.
func DetectAndDecode(content []byte) (types.Text, Detection, error) {
	det, err := Detect(content)
	if err != nil {
		return types.Text{}, det, err
	}
	text, err := Decode(content, det.Label)
	if err != nil {
		return types.Text{}, det, err
	}
	return text, det, nil
}

// isBinary checks the first 8KB for NUL bytes.
func isBinary(content []byte) bool {
	n := min(len(content), sniffLen)
	return bytes.IndexByte(content[:n], 0) != -1
}

func isASCII(content []byte) bool {
	for _, b := range content {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
