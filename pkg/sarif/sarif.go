package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "spellcheck"
	ToolVersion = "0.1.0"

	// RuleID is the single rule every misspelling is reported under.
	RuleID = "spellcheck/misspelling"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool        Tool         `json:"tool"`
	Invocations []Invocation `json:"invocations,omitempty"`
	Results     []Result     `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule represents a detection rule
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Invocation records whether the run completed and what went wrong per file.
type Invocation struct {
	ExecutionSuccessful bool           `json:"executionSuccessful"`
	Notifications       []Notification `json:"toolExecutionNotifications,omitempty"`
}

// Notification is a non-result problem, such as a file that failed to decode.
type Notification struct {
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

// Result represents a single misspelling
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           *Region          `json:"region,omitempty"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range. Columns count characters.
type Region struct {
	StartLine   int     `json:"startLine"`
	StartColumn int     `json:"startColumn"`
	EndLine     int     `json:"endLine"`
	EndColumn   int     `json:"endColumn"`
	CharOffset  int     `json:"charOffset"`
	CharLength  int     `json:"charLength"`
	Snippet     Snippet `json:"snippet,omitempty"`
}

// Snippet contains the matched text
type Snippet struct {
	Text string `json:"text"`
}

// NewReport creates a new SARIF report with the misspelling rule registered
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: ToolVersion,
						Rules: []Rule{
							{
								ID:   RuleID,
								Name: "Misspelling",
								ShortDescription: ShortDescription{
									Text: "A word was not recognized by the spelling dictionary",
								},
							},
						},
					},
				},
				Invocations: []Invocation{{ExecutionSuccessful: true}},
				Results:     []Result{},
			},
		},
	}
}

// AddMisspelling adds one misspelling in filePath to the report
func (r *Report) AddMisspelling(m types.Misspelling, filePath string) {
	endLine, endColumn := endPosition(m)

	result := Result{
		RuleID: RuleID,
		Level:  "error",
		Message: Message{
			Text: fmt.Sprintf("Misspelling '%s'", m.Text),
		},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{
						URI: formatFileURI(filePath),
					},
					Region: &Region{
						StartLine:   m.Position.Line,
						StartColumn: m.Position.Column,
						EndLine:     endLine,
						EndColumn:   endColumn,
						CharOffset:  m.Span.Start,
						CharLength:  m.Span.Len(),
						Snippet:     Snippet{Text: m.Text},
					},
				},
			},
		},
	}

	r.Runs[0].Results = append(r.Runs[0].Results, result)
}

// AddFileError records a file that could not be checked and marks the
// invocation unsuccessful.
func (r *Report) AddFileError(filePath string, err error) {
	inv := &r.Runs[0].Invocations[0]
	inv.ExecutionSuccessful = false
	inv.Notifications = append(inv.Notifications, Notification{
		Level:   "error",
		Message: Message{Text: fmt.Sprintf("Failed to check %s: %v", filePath, err)},
		Locations: []Location{
			{PhysicalLocation: PhysicalLocation{ArtifactLocation: ArtifactLocation{URI: formatFileURI(filePath)}}},
		},
	})
}

// AddResults adds every misspelling and file error in results, in order
func (r *Report) AddResults(results []types.FileResult) {
	for _, res := range results {
		if res.Err != nil {
			r.AddFileError(res.Path, res.Err)
			continue
		}
		for _, m := range res.Misspellings {
			r.AddMisspelling(m, res.Path)
		}
	}
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// endPosition returns the exclusive end of m as a line and column.
func endPosition(m types.Misspelling) (int, int) {
	line, column := m.Position.Line, m.Position.Column
	for _, c := range m.Text {
		if c == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		// Normalize path separators for URI format
		path = filepath.ToSlash(path)
		// Ensure path starts with /
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	// Relative paths stay as-is
	return filepath.ToSlash(path)
}
