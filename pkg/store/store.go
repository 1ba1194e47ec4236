package store

import (
	"fmt"
	"time"

	"github.com/praetorian-inc/spellcheck/pkg/types"
)

// MemoryPath selects the in-memory backend.
const MemoryPath = ":memory:"

// Run is one recorded invocation of the checker.
type Run struct {
	ID          int64         `json:"id"`
	Fingerprint string        `json:"fingerprint"`
	StartedAt   time.Time     `json:"started_at"`
	Outcome     types.Outcome `json:"outcome"`
}

// Store provides persistence for check results.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (SQLite, memory).
type Store interface {
	// AddRun records a run and assigns its ID.
	AddRun(run *Run) error

	// AddFileResult stores the result of one file under a run.
	AddFileResult(runID int64, fingerprint string, r *types.FileResult) error

	// GetFileResult returns a successful result for identical content checked
	// with the same fingerprint, or nil if there is none.
	GetFileResult(blobID types.BlobID, fingerprint string) (*types.FileResult, error)

	// GetRuns returns all runs, oldest first.
	GetRuns() ([]*Run, error)

	// GetFileResults returns a run's file results in insertion order.
	GetFileResults(runID int64) ([]*types.FileResult, error)

	// Close closes the underlying storage.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store. ":memory:" selects MemoryStore; any other path opens
// a SQLite database.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Path == MemoryPath {
		return NewMemory(), nil
	}
	return NewSQLite(cfg.Path)
}

// SaveRun records a run together with all its file results.
func SaveRun(s Store, run *Run, results []types.FileResult) error {
	if err := s.AddRun(run); err != nil {
		return err
	}
	for i := range results {
		if err := s.AddFileResult(run.ID, run.Fingerprint, &results[i]); err != nil {
			return fmt.Errorf("saving %s: %w", results[i].Path, err)
		}
	}
	return nil
}

// LatestRun returns the most recent run, or nil if the store is empty.
func LatestRun(s Store) (*Run, error) {
	runs, err := s.GetRuns()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[len(runs)-1], nil
}
