package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"prodedup/product"
)

type Store struct {
	db *sql.DB
}

var ErrRunNotFound = errors.New("run not found")

// RunSummary is one persisted deduplication run.
type RunSummary struct {
	ID             int64
	StartedAt      time.Time
	FinishedAt     time.Time
	FilesProcessed int
}

func OpenSQLite(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	files_processed INTEGER NOT NULL CHECK(files_processed >= 0),
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS file_stats (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	file_name TEXT NOT NULL,
	products_before INTEGER,
	products_after INTEGER,
	error TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// RecordRun persists one completed run with its per-file stats and returns
// the new run ID.
func (s *Store) RecordRun(startedAt, finishedAt time.Time, filesProcessed int, stats []product.FileStats) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, finished_at, files_processed) VALUES (?, ?, ?);`,
		startedAt.Format(time.RFC3339),
		finishedAt.Format(time.RFC3339),
		filesProcessed,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read run id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO file_stats (run_id, file_name, products_before, products_after, error) VALUES (?, ?, ?, ?, ?);`,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare stats insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range stats {
		if _, err := stmt.Exec(
			runID,
			record.FileName,
			nullableCount(record.ProductsBefore),
			nullableCount(record.ProductsAfter),
			record.Error,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert file stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return runID, nil
}

// ListRuns returns all persisted runs, most recent first.
func (s *Store) ListRuns() ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, files_processed FROM runs ORDER BY id DESC;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunSummary, 0, 16)
	for rows.Next() {
		var (
			run        RunSummary
			startedRaw string
			endedRaw   string
		)
		if err := rows.Scan(&run.ID, &startedRaw, &endedRaw, &run.FilesProcessed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.StartedAt, err = time.Parse(time.RFC3339, startedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", startedRaw, err)
		}
		run.FinishedAt, err = time.Parse(time.RFC3339, endedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", endedRaw, err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun returns one run summary by ID.
func (s *Store) GetRun(id int64) (RunSummary, error) {
	var (
		run        RunSummary
		startedRaw string
		endedRaw   string
	)
	err := s.db.QueryRow(
		`SELECT id, started_at, finished_at, files_processed FROM runs WHERE id = ?;`, id,
	).Scan(&run.ID, &startedRaw, &endedRaw, &run.FilesProcessed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunSummary{}, ErrRunNotFound
		}
		return RunSummary{}, fmt.Errorf("query run %d: %w", id, err)
	}

	run.StartedAt, err = time.Parse(time.RFC3339, startedRaw)
	if err != nil {
		return RunSummary{}, fmt.Errorf("parse started_at %q: %w", startedRaw, err)
	}
	run.FinishedAt, err = time.Parse(time.RFC3339, endedRaw)
	if err != nil {
		return RunSummary{}, fmt.Errorf("parse finished_at %q: %w", endedRaw, err)
	}

	return run, nil
}

// ListRunStats returns the per-file records of one run in insertion order.
func (s *Store) ListRunStats(runID int64) ([]product.FileStats, error) {
	rows, err := s.db.Query(
		`SELECT file_name, products_before, products_after, error FROM file_stats WHERE run_id = ? ORDER BY id;`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query file stats: %w", err)
	}
	defer rows.Close()

	stats := make([]product.FileStats, 0, 32)
	for rows.Next() {
		var (
			record product.FileStats
			before sql.NullInt64
			after  sql.NullInt64
		)
		if err := rows.Scan(&record.FileName, &before, &after, &record.Error); err != nil {
			return nil, fmt.Errorf("scan file stats: %w", err)
		}
		record.ProductsBefore = countFromNullable(before)
		record.ProductsAfter = countFromNullable(after)
		stats = append(stats, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file stats: %w", err)
	}

	return stats, nil
}

func nullableCount(count *int) any {
	if count == nil {
		return nil
	}
	return *count
}

func countFromNullable(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	return product.Count(int(value.Int64))
}
