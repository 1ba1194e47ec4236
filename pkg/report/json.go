package report

import (
	"encoding/json"
	"io"

	"github.com/praetorian-inc/spellcheck/pkg/sarif"
	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// jsonFile is a FileResult with its error flattened to a string.
type jsonFile struct {
	types.FileResult
	Error string `json:"error,omitempty"`
}

type jsonReport struct {
	Outcome types.Outcome `json:"outcome"`
	Files   []jsonFile    `json:"files"`
}

// WriteJSON writes results and their outcome as indented JSON.
func WriteJSON(w io.Writer, results []types.FileResult) (types.Outcome, error) {
	rep := jsonReport{Outcome: Aggregate(results), Files: make([]jsonFile, 0, len(results))}
	for _, r := range results {
		f := jsonFile{FileResult: r}
		if f.Misspellings == nil {
			f.Misspellings = []types.Misspelling{}
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		rep.Files = append(rep.Files, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return rep.Outcome, enc.Encode(rep)
}

// WriteSARIF writes results as a SARIF 2.1.0 log.
func WriteSARIF(w io.Writer, results []types.FileResult) (types.Outcome, error) {
	rep := sarif.NewReport()
	rep.AddResults(results)

	data, err := rep.ToJSON()
	if err != nil {
		return types.Outcome{}, err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return types.Outcome{}, err
	}
	return Aggregate(results), nil
}
