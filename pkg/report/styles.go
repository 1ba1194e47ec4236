package report

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds color formatters for human output
type styles struct {
	errorLabel   *color.Color
	warningLabel *color.Color
	heading      *color.Color
	succeeded    *color.Color
	failed       *color.Color
}

// newStyles creates color formatters for report output
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		errorLabel:   color.New(color.Bold, color.FgHiRed),
		warningLabel: color.New(color.Bold, color.FgYellow),
		heading:      color.New(color.Bold),
		succeeded:    color.New(color.Bold, color.FgHiGreen),
		failed:       color.New(color.Bold, color.FgHiRed),
	}

	for _, c := range []*color.Color{s.errorLabel, s.warningLabel, s.heading, s.succeeded, s.failed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// ColorEnabled resolves a --color setting (auto, always, never) for output
// written to f.
func ColorEnabled(mode string, f *os.File) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		// Check if f is a TTY and NO_COLOR is not set
		return term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("unknown color mode: %s", mode)
	}
}
