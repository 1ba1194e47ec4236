package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// fileRecord is a stored file result with its cache key.
type fileRecord struct {
	runID       int64
	fingerprint string
	result      types.FileResult
}

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   []*Run
	files  []fileRecord
	closed bool
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// AddRun records a run and assigns its ID.
func (m *MemoryStore) AddRun(run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("store is closed")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	run.ID = int64(len(m.runs) + 1)

	stored := *run
	m.runs = append(m.runs, &stored)
	return nil
}

// AddFileResult stores the result of one file under a run.
func (m *MemoryStore) AddFileResult(runID int64, fingerprint string, r *types.FileResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("store is closed")
	}
	if runID < 1 || runID > int64(len(m.runs)) {
		return fmt.Errorf("unknown run %d", runID)
	}

	rec := fileRecord{runID: runID, fingerprint: fingerprint, result: *r}
	rec.result.Misspellings = slices.Clone(r.Misspellings)
	m.files = append(m.files, rec)
	return nil
}

// GetFileResult returns a successful result for identical content checked
// with the same fingerprint, or nil if there is none.
func (m *MemoryStore) GetFileResult(blobID types.BlobID, fingerprint string) (*types.FileResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Newest first, matching the SQLite backend
	for i := len(m.files) - 1; i >= 0; i-- {
		rec := m.files[i]
		if rec.result.BlobID == blobID && rec.fingerprint == fingerprint && rec.result.Err == nil {
			return copyResult(rec.result), nil
		}
	}
	return nil, nil
}

// GetRuns returns all runs, oldest first.
func (m *MemoryStore) GetRuns() ([]*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*Run, 0, len(m.runs))
	for _, r := range m.runs {
		run := *r
		runs = append(runs, &run)
	}
	return runs, nil
}

// GetFileResults returns a run's file results in insertion order.
func (m *MemoryStore) GetFileResults(runID int64) ([]*types.FileResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*types.FileResult
	for _, rec := range m.files {
		if rec.runID == runID {
			results = append(results, copyResult(rec.result))
		}
	}
	return results, nil
}

// Close marks the store closed. Reads keep working.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

func copyResult(r types.FileResult) *types.FileResult {
	out := r
	out.Misspellings = slices.Clone(r.Misspellings)
	if out.Misspellings == nil {
		out.Misspellings = []types.Misspelling{}
	}
	return &out
}
