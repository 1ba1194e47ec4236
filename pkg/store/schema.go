package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createRunsTable(db); err != nil {
		return fmt.Errorf("creating runs table: %w", err)
	}

	if err := createFilesTable(db); err != nil {
		return fmt.Errorf("creating files table: %w", err)
	}

	if err := createMisspellingsTable(db); err != nil {
		return fmt.Errorf("creating misspellings table: %w", err)
	}

	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Insert version if table is empty
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createRunsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fingerprint TEXT NOT NULL,
			started_at TEXT NOT NULL,
			failed INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			file_errors INTEGER NOT NULL,
			files INTEGER NOT NULL
		)
	`)
	return err
}

func createFilesTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			path TEXT NOT NULL,
			blob_id TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			encoding TEXT,
			confidence REAL,
			skipped INTEGER NOT NULL DEFAULT 0,
			error TEXT
		)
	`)
	if err != nil {
		return err
	}

	// Incremental lookups go by content and configuration
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_files_blob_fingerprint ON files(blob_id, fingerprint)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)
	`)
	return err
}

func createMisspellingsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS misspellings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_id INTEGER NOT NULL REFERENCES files(id),
			offset_start INTEGER NOT NULL,
			offset_end INTEGER NOT NULL,
			line_number INTEGER NOT NULL,
			column_number INTEGER NOT NULL,
			text TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_misspellings_file_id ON misspellings(file_id)
	`)
	return err
}
