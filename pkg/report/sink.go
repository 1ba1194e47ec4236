// Package report turns check results into diagnostics for a sink and into
// structured output.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Sink receives diagnostics and exactly one terminal status per run.
type Sink interface {
	Error(msg string)
	Warning(msg string)
	Complete(failed bool, msg string)
}

// AzureSink writes Azure Pipelines logging commands.
type AzureSink struct {
	w io.Writer
}

// NewAzureSink creates a sink writing logging commands to w.
func NewAzureSink(w io.Writer) *AzureSink {
	return &AzureSink{w: w}
}

func (s *AzureSink) Error(msg string) {
	fmt.Fprintf(s.w, "##vso[task.logissue type=error]%s\n", escapeData(msg))
}

func (s *AzureSink) Warning(msg string) {
	fmt.Fprintf(s.w, "##vso[task.logissue type=warning]%s\n", escapeData(msg))
}

func (s *AzureSink) Complete(failed bool, msg string) {
	result := "Succeeded"
	if failed {
		result = "Failed"
	}
	fmt.Fprintf(s.w, "##vso[task.complete result=%s;]%s\n", result, escapeData(msg))
}

// escapeData keeps a message on one logging command line.
var escapeData = strings.NewReplacer(
	"%", "%AZP25",
	"\r", "%0D",
	"\n", "%0A",
).Replace

// HumanSink writes colored diagnostics for a terminal.
type HumanSink struct {
	w io.Writer
	s *styles
}

// NewHumanSink creates a sink writing to w. Colors are used only when
// color is true.
func NewHumanSink(w io.Writer, color bool) *HumanSink {
	return &HumanSink{w: w, s: newStyles(color)}
}

func (h *HumanSink) Error(msg string) {
	fmt.Fprintf(h.w, "%s %s\n", h.s.errorLabel.Sprint("error:"), msg)
}

func (h *HumanSink) Warning(msg string) {
	fmt.Fprintf(h.w, "%s %s\n", h.s.warningLabel.Sprint("warning:"), msg)
}

func (h *HumanSink) Complete(failed bool, msg string) {
	if failed {
		fmt.Fprintf(h.w, "\n%s %s\n", h.s.failed.Sprint("FAILED"), h.s.heading.Sprint(msg))
		return
	}
	fmt.Fprintf(h.w, "\n%s %s\n", h.s.succeeded.Sprint("OK"), h.s.heading.Sprint(msg))
}

// Entry is one diagnostic captured by a Recorder.
type Entry struct {
	Level   string
	Message string
}

// Recorder is a Sink that keeps everything it receives. It is safe for
// concurrent use.
type Recorder struct {
	mu        sync.Mutex
	Entries   []Entry
	Completed bool
	Failed    bool
	Summary   string
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, Entry{Level: "error", Message: msg})
}

func (r *Recorder) Warning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, Entry{Level: "warning", Message: msg})
}

func (r *Recorder) Complete(failed bool, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Completed, r.Failed, r.Summary = true, failed, msg
}

// Errors returns the messages of all error entries.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, e := range r.Entries {
		if e.Level == "error" {
			out = append(out, e.Message)
		}
	}
	return out
}
