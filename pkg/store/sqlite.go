package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/praetorian-inc/spellcheck/pkg/types"
	_ "modernc.org/sqlite"
)

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite serializes writers anyway; a single connection also keeps
	// ":memory:" databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// AddRun records a run and assigns its ID.
func (s *SQLiteStore) AddRun(run *Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	res, err := s.db.Exec(`
		INSERT INTO runs (fingerprint, started_at, failed, error_count, file_errors, files)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.Fingerprint,
		run.StartedAt.Format(time.RFC3339Nano),
		run.Outcome.Failed,
		run.Outcome.ErrorCount,
		run.Outcome.FileErrors,
		run.Outcome.Files,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	run.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}
	return nil
}

// AddFileResult stores the result of one file under a run.
func (s *SQLiteStore) AddFileResult(runID int64, fingerprint string, r *types.FileResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var errMsg *string
	if r.Err != nil {
		msg := r.Err.Error()
		errMsg = &msg
	}

	res, err := tx.Exec(`
		INSERT INTO files (run_id, path, blob_id, fingerprint, encoding, confidence, skipped, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		r.Path,
		r.BlobID.Hex(),
		fingerprint,
		r.Encoding,
		r.Confidence,
		r.Skipped,
		errMsg,
	)
	if err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}
	fileID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading file id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO misspellings (file_id, offset_start, offset_end, line_number, column_number, text)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing misspelling insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range r.Misspellings {
		_, err := stmt.Exec(fileID, m.Span.Start, m.Span.End, m.Position.Line, m.Position.Column, m.Text)
		if err != nil {
			return fmt.Errorf("inserting misspelling: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetFileResult returns a successful result for identical content checked
// with the same fingerprint, or nil if there is none.
func (s *SQLiteStore) GetFileResult(blobID types.BlobID, fingerprint string) (*types.FileResult, error) {
	rows, err := s.db.Query(`
		SELECT id, path, blob_id, encoding, confidence, skipped, error
		FROM files
		WHERE blob_id = ? AND fingerprint = ? AND error IS NULL
		ORDER BY id DESC
		LIMIT 1
	`, blobID.Hex(), fingerprint)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	results, ids, err := scanFiles(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	if err := s.loadMisspellings(results[0], ids[0]); err != nil {
		return nil, err
	}
	return results[0], nil
}

// GetRuns returns all runs, oldest first.
func (s *SQLiteStore) GetRuns() ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT id, fingerprint, started_at, failed, error_count, file_errors, files
		FROM runs
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var startedAt string
		err := rows.Scan(
			&run.ID,
			&run.Fingerprint,
			&startedAt,
			&run.Outcome.Failed,
			&run.Outcome.ErrorCount,
			&run.Outcome.FileErrors,
			&run.Outcome.Files,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run start time: %w", err)
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// GetFileResults returns a run's file results in insertion order.
func (s *SQLiteStore) GetFileResults(runID int64) ([]*types.FileResult, error) {
	rows, err := s.db.Query(`
		SELECT id, path, blob_id, encoding, confidence, skipped, error
		FROM files
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	results, ids, err := scanFiles(rows)
	if err != nil {
		return nil, err
	}

	for i, r := range results {
		if err := s.loadMisspellings(r, ids[i]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanFiles reads file rows and closes them. It returns the row IDs
// alongside the results.
func scanFiles(rows *sql.Rows) ([]*types.FileResult, []int64, error) {
	defer rows.Close()

	var results []*types.FileResult
	var ids []int64
	for rows.Next() {
		var r types.FileResult
		var id int64
		var blobIDHex string
		var encoding sql.NullString
		var confidence sql.NullFloat64
		var errMsg sql.NullString

		err := rows.Scan(&id, &r.Path, &blobIDHex, &encoding, &confidence, &r.Skipped, &errMsg)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning file: %w", err)
		}

		r.BlobID, err = types.ParseBlobID(blobIDHex)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing blob ID: %w", err)
		}
		r.Encoding = encoding.String
		r.Confidence = confidence.Float64
		if errMsg.Valid {
			r.Err = errors.New(errMsg.String)
		}

		results = append(results, &r)
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating files: %w", err)
	}
	return results, ids, nil
}

func (s *SQLiteStore) loadMisspellings(r *types.FileResult, fileID int64) error {
	rows, err := s.db.Query(`
		SELECT offset_start, offset_end, line_number, column_number, text
		FROM misspellings
		WHERE file_id = ?
		ORDER BY id
	`, fileID)
	if err != nil {
		return fmt.Errorf("querying misspellings: %w", err)
	}
	defer rows.Close()

	r.Misspellings = []types.Misspelling{}
	for rows.Next() {
		var m types.Misspelling
		err := rows.Scan(&m.Span.Start, &m.Span.End, &m.Position.Line, &m.Position.Column, &m.Text)
		if err != nil {
			return fmt.Errorf("scanning misspelling: %w", err)
		}
		m.Span.Text = m.Text
		r.Misspellings = append(r.Misspellings, m)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating misspellings: %w", err)
	}
	return nil
}
