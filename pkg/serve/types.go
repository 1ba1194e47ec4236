package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "check" | "check_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// CheckPayload is the payload for "check" requests
type CheckPayload struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CheckBatchPayload is the payload for "check_batch" requests
type CheckBatchPayload struct {
	Items []CheckPayload `json:"items"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "check" | "check_batch" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}

// CheckData is the data field for "check" responses
type CheckData struct {
	Path         string              `json:"path"`
	Misspellings []types.Misspelling `json:"misspellings"`
	Error        string              `json:"error,omitempty"`
}

// CheckBatchData is the data field for "check_batch" responses
type CheckBatchData struct {
	Results []CheckData   `json:"results"`
	Outcome types.Outcome `json:"outcome"`
}

func newCheckData(r types.FileResult) CheckData {
	d := CheckData{Path: r.Path, Misspellings: r.Misspellings}
	if d.Misspellings == nil {
		d.Misspellings = []types.Misspelling{}
	}
	if r.Err != nil {
		d.Error = r.Err.Error()
	}
	return d
}
