package types

// Misspelling is a reportable span that survived filtering.
type Misspelling struct {
	Span     Span     `json:"span"`
	Position Position `json:"position"`
	Text     string   `json:"text"`
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path         string        `json:"path"`
	BlobID       BlobID        `json:"blob_id"`
	Encoding     string        `json:"encoding,omitempty"`
	Confidence   float64       `json:"confidence,omitempty"`
	Misspellings []Misspelling `json:"misspellings"`
	// Skipped is set for binary content when binary files are not treated as failures.
	Skipped bool `json:"skipped,omitempty"`
	// Err is set when the file could not be decoded or checked.
	Err error `json:"-"`
}

// Failed reports whether the file's pipeline aborted.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Outcome summarizes a run.
type Outcome struct {
	Failed     bool `json:"failed"`
	ErrorCount int  `json:"error_count"`
	FileErrors int  `json:"file_errors"`
	Files      int  `json:"files"`
}
