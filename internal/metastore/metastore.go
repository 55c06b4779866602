// Package metastore persists a record of every import job: the generated
// statements, row counts and final status. Backed by a local SQLite
// database so history survives across runs.
package metastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Job is one recorded import run.
type Job struct {
	ID           string
	SourceTable  string
	HiveTable    string
	CreateStmt   string
	LoadStmt     string
	RowsExported int64
	Status       string // running, success, failed
	Error        string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Store is a SQLite-backed job store.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id            TEXT PRIMARY KEY,
	source_table  TEXT NOT NULL,
	hive_table    TEXT NOT NULL,
	create_stmt   TEXT NOT NULL DEFAULT '',
	load_stmt     TEXT NOT NULL DEFAULT '',
	rows_exported INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL,
	error         TEXT NOT NULL DEFAULT '',
	started_at    TEXT NOT NULL,
	finished_at   TEXT NOT NULL DEFAULT ''
);
`

// Open opens (creating if needed) the job store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening metastore: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing metastore schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateJob records the start of an import run.
func (s *Store) CreateJob(id, sourceTable, hiveTable string) error {
	_, err := s.db.Exec(`
		INSERT INTO jobs (id, source_table, hive_table, status, started_at)
		VALUES (?, ?, ?, 'running', ?)
	`, id, sourceTable, hiveTable, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording job start: %w", err)
	}
	return nil
}

// CompleteJob marks a job successful and stores its artifacts.
func (s *Store) CompleteJob(id, createStmt, loadStmt string, rows int64) error {
	_, err := s.db.Exec(`
		UPDATE jobs
		SET status = 'success', create_stmt = ?, load_stmt = ?,
		    rows_exported = ?, finished_at = ?
		WHERE id = ?
	`, createStmt, loadStmt, rows, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("recording job completion: %w", err)
	}
	return nil
}

// FailJob marks a job failed with its error message.
func (s *Store) FailJob(id, errMsg string) error {
	_, err := s.db.Exec(`
		UPDATE jobs
		SET status = 'failed', error = ?, finished_at = ?
		WHERE id = ?
	`, errMsg, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("recording job failure: %w", err)
	}
	return nil
}

// GetJob returns the job with the given ID.
func (s *Store) GetJob(id string) (*Job, error) {
	row := s.db.QueryRow(`
		SELECT id, source_table, hive_table, create_stmt, load_stmt,
		       rows_exported, status, error, started_at, finished_at
		FROM jobs WHERE id = ?
	`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no job with id %s", id)
	}
	return job, err
}

// ListJobs returns all jobs, most recent first.
func (s *Store) ListJobs() ([]Job, error) {
	rows, err := s.db.Query(`
		SELECT id, source_table, hive_table, create_stmt, load_stmt,
		       rows_exported, status, error, started_at, finished_at
		FROM jobs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// DeleteJob removes a job record.
func (s *Store) DeleteJob(id string) error {
	res, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no job with id %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (*Job, error) {
	var job Job
	var started, finished string
	err := r.Scan(&job.ID, &job.SourceTable, &job.HiveTable, &job.CreateStmt,
		&job.LoadStmt, &job.RowsExported, &job.Status, &job.Error,
		&started, &finished)
	if err != nil {
		return nil, err
	}
	job.StartedAt, _ = time.Parse(time.RFC3339, started)
	if finished != "" {
		job.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	}
	return &job, nil
}
