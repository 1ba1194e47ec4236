package store

import (
	"database/sql"
	"fmt"
	"os"
)

// MergeConfig configures the merge operation.
type MergeConfig struct {
	// SourcePaths are the database files to merge from.
	SourcePaths []string
	// DestPath is the destination database file.
	DestPath string
}

// MergeStats tracks merge operation statistics.
type MergeStats struct {
	RunsMerged         int
	FilesMerged        int
	MisspellingsMerged int
	SourcesProcessed   int
}

// Merge combines the runs of several result databases into one, for
// example the shards of a parallel CI job. Runs are renumbered in the
// destination; their files and misspellings follow them.
func Merge(cfg MergeConfig) (*MergeStats, error) {
	if len(cfg.SourcePaths) == 0 {
		return nil, fmt.Errorf("no source databases specified")
	}
	if cfg.DestPath == "" {
		return nil, fmt.Errorf("destination path is required")
	}

	destDB, err := openDB(cfg.DestPath)
	if err != nil {
		return nil, fmt.Errorf("opening destination database: %w", err)
	}
	defer destDB.Close()

	stats := &MergeStats{}

	for _, sourcePath := range cfg.SourcePaths {
		sourceStats, err := mergeFrom(destDB, sourcePath)
		if err != nil {
			return stats, fmt.Errorf("merging from %s: %w", sourcePath, err)
		}
		stats.RunsMerged += sourceStats.RunsMerged
		stats.FilesMerged += sourceStats.FilesMerged
		stats.MisspellingsMerged += sourceStats.MisspellingsMerged
		stats.SourcesProcessed++
	}

	return stats, nil
}

// mergeFrom copies every run of a source database to the destination.
func mergeFrom(destDB *sql.DB, sourcePath string) (*MergeStats, error) {
	// Opening a missing file would create an empty database
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, fmt.Errorf("source database: %w", err)
	}

	sourceDB, err := openDB(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	defer sourceDB.Close()

	// Read everything before writing: each handle has one connection.
	runs, err := readRunRows(sourceDB)
	if err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}
	files, err := readFileRows(sourceDB)
	if err != nil {
		return nil, fmt.Errorf("reading files: %w", err)
	}
	misspellings, err := readMisspellingRows(sourceDB)
	if err != nil {
		return nil, fmt.Errorf("reading misspellings: %w", err)
	}

	tx, err := destDB.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stats := &MergeStats{}

	runIDs := make(map[int64]int64, len(runs))
	for _, r := range runs {
		res, err := tx.Exec(`
			INSERT INTO runs (fingerprint, started_at, failed, error_count, file_errors, files)
			VALUES (?, ?, ?, ?, ?, ?)
		`, r.fingerprint, r.startedAt, r.failed, r.errorCount, r.fileErrors, r.files)
		if err != nil {
			return nil, fmt.Errorf("inserting run: %w", err)
		}
		if runIDs[r.id], err = res.LastInsertId(); err != nil {
			return nil, err
		}
		stats.RunsMerged++
	}

	fileIDs := make(map[int64]int64, len(files))
	for _, f := range files {
		runID, ok := runIDs[f.runID]
		if !ok {
			continue
		}
		res, err := tx.Exec(`
			INSERT INTO files (run_id, path, blob_id, fingerprint, encoding, confidence, skipped, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, f.path, f.blobID, f.fingerprint, f.encoding, f.confidence, f.skipped, f.err)
		if err != nil {
			return nil, fmt.Errorf("inserting file: %w", err)
		}
		if fileIDs[f.id], err = res.LastInsertId(); err != nil {
			return nil, err
		}
		stats.FilesMerged++
	}

	stmt, err := tx.Prepare(`
		INSERT INTO misspellings (file_id, offset_start, offset_end, line_number, column_number, text)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for _, m := range misspellings {
		fileID, ok := fileIDs[m.fileID]
		if !ok {
			continue
		}
		if _, err := stmt.Exec(fileID, m.start, m.end, m.line, m.column, m.text); err != nil {
			return nil, fmt.Errorf("inserting misspelling: %w", err)
		}
		stats.MisspellingsMerged++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return stats, nil
}

type runRow struct {
	id          int64
	fingerprint string
	startedAt   string
	failed      bool
	errorCount  int
	fileErrors  int
	files       int
}

type fileRow struct {
	id, runID   int64
	path        string
	blobID      string
	fingerprint string
	encoding    sql.NullString
	confidence  sql.NullFloat64
	skipped     bool
	err         sql.NullString
}

type misspellingRow struct {
	fileID       int64
	start, end   int
	line, column int
	text         string
}

func readRunRows(db *sql.DB) ([]runRow, error) {
	rows, err := db.Query(`
		SELECT id, fingerprint, started_at, failed, error_count, file_errors, files
		FROM runs ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []runRow
	for rows.Next() {
		var r runRow
		if err := rows.Scan(&r.id, &r.fingerprint, &r.startedAt, &r.failed, &r.errorCount, &r.fileErrors, &r.files); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func readFileRows(db *sql.DB) ([]fileRow, error) {
	rows, err := db.Query(`
		SELECT id, run_id, path, blob_id, fingerprint, encoding, confidence, skipped, error
		FROM files ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fileRow
	for rows.Next() {
		var f fileRow
		if err := rows.Scan(&f.id, &f.runID, &f.path, &f.blobID, &f.fingerprint, &f.encoding, &f.confidence, &f.skipped, &f.err); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func readMisspellingRows(db *sql.DB) ([]misspellingRow, error) {
	rows, err := db.Query(`
		SELECT file_id, offset_start, offset_end, line_number, column_number, text
		FROM misspellings ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []misspellingRow
	for rows.Next() {
		var m misspellingRow
		if err := rows.Scan(&m.fileID, &m.start, &m.end, &m.line, &m.column, &m.text); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
