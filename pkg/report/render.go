package report

import (
	"fmt"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// Mode selects how a misspelling's location is printed.
type Mode int

const (
	// Positions prints "<line>:<column>".
	Positions Mode = iota
	// Offsets prints "<start>-<end>" character offsets.
	Offsets
)

// Aggregate sums misspellings and file failures across results.
func Aggregate(results []types.FileResult) types.Outcome {
	out := types.Outcome{Files: len(results)}
	for _, r := range results {
		if r.Err != nil {
			out.FileErrors++
			continue
		}
		out.ErrorCount += len(r.Misspellings)
	}
	out.Failed = out.ErrorCount > 0 || out.FileErrors > 0
	return out
}

// Render emits one diagnostic block per file with misspellings, one error
// per failed file, and then the terminal status. Files are visited in the
// order given.
func Render(sink Sink, results []types.FileResult, mode Mode) types.Outcome {
	for _, r := range results {
		switch {
		case r.Err != nil:
			sink.Error(fmt.Sprintf("Failed to check %s: %v", r.Path, r.Err))
		case r.Skipped:
			sink.Warning(fmt.Sprintf("Skipped binary file %s", r.Path))
		case len(r.Misspellings) > 0:
			sink.Error(fmt.Sprintf("Misspellings in %s", r.Path))
			for _, m := range r.Misspellings {
				sink.Error(fmt.Sprintf("%s Misspelling '%s'", location(m, mode), m.Text))
			}
		}
	}

	outcome := Aggregate(results)
	sink.Complete(outcome.Failed, Summary(outcome))
	return outcome
}

// Summary is the terminal status message for an outcome.
func Summary(o types.Outcome) string {
	msg := fmt.Sprintf("%d misspellings detected", o.ErrorCount)
	if o.FileErrors > 0 {
		msg += fmt.Sprintf(", %d files could not be checked", o.FileErrors)
	}
	return msg
}

func location(m types.Misspelling, mode Mode) string {
	if mode == Offsets {
		return m.Span.String()
	}
	return m.Position.String()
}
