package main

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const levelWidth = 5

// newLogger builds the stderr logger. Diagnostics never go through it.
func newLogger(w io.Writer, verbose, quiet bool) *log.Logger {
	level := log.InfoLevel
	switch {
	case quiet:
		level = log.ErrorLevel
	case verbose:
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "spellcheck",
		ReportTimestamp: verbose,
		TimeFormat:      time.TimeOnly,
	})
	logger.SetStyles(logStyles())
	return logger
}

// logStyles returns the default styles, but with level labels padded to the
// same width.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Bold(true).Faint(true)
	styles.Key = lipgloss.NewStyle().Faint(true)

	colors := map[log.Level]string{
		log.DebugLevel: "63",
		log.InfoLevel:  "86",
		log.WarnLevel:  "192",
		log.ErrorLevel: "204",
		log.FatalLevel: "134",
	}
	for level, c := range colors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			Bold(true).
			MaxWidth(levelWidth).
			Foreground(lipgloss.Color(c))
	}
	return styles
}
