package matcher

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single regex evaluation to stop catastrophic backtracking.
const DefaultMatchTimeout = 5 * time.Second

// URLExpr recognizes http and https URLs with an optional www. prefix, a host,
// and an optional path or query. The host is either a dotted name or a single
// label such as localhost, optionally followed by a port. Misspellings inside
// these matches are never reported.
const URLExpr = `https?://(?:www\.)?(?:[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b|[a-zA-Z0-9][-a-zA-Z0-9]*(?::[0-9]{1,5})?\b)(?:[-a-zA-Z0-9()@:%_+.~#?&/=]*)`

// ErrPatternCompile is returned when a user supplied expression does not compile.
var ErrPatternCompile = errors.New("invalid pattern")

// Pattern is a compiled expression. It is safe for concurrent use.
type Pattern struct {
	source string
	re     *regexp2.Regexp
}

// Compile compiles expr with ECMAScript semantics, falling back to the
// default .NET-compatible syntax for constructs ECMAScript mode rejects.
func Compile(expr string) (*Pattern, error) {
	return CompileWithTimeout(expr, DefaultMatchTimeout)
}

// CompileWithTimeout is Compile with a custom per-evaluation timeout.
func CompileWithTimeout(expr string, timeout time.Duration) (*Pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		var fallbackErr error
		re, fallbackErr = regexp2.Compile(expr, regexp2.None)
		if fallbackErr != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrPatternCompile, expr, err)
		}
	}
	re.MatchTimeout = timeout
	return &Pattern{source: expr, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.source
}

var urlPattern = MustCompile(URLExpr)

// URL returns the shared exclusion pattern for URLs.
func URL() *Pattern {
	return urlPattern
}
