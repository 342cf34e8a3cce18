package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/keydiff/keydiff/internal/model"
)

// ErrRunNotFound is returned when no stored run matches the requested ID.
var ErrRunNotFound = errors.New("comparison run not found")

// HistoryDB provides SQLite-based storage for comparison runs.
// It manages connection pooling and provides methods for saving and
// retrieving past comparisons.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "keydiff.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple idle connections buy nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Comparison runs store one row per saved comparison, with the
	-- full serialized report for later display.
	CREATE TABLE IF NOT EXISTS comparisons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		file_a TEXT NOT NULL,
		file_b TEXT NOT NULL,
		only_in_a INTEGER NOT NULL,
		only_in_b INTEGER NOT NULL,
		differing INTEGER NOT NULL,
		identical INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_comparisons_timestamp ON comparisons(timestamp);
	CREATE INDEX IF NOT EXISTS idx_comparisons_files ON comparisons(file_a, file_b);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata describes one stored comparison run for history listings.
type RunMetadata struct {
	// ID is the run's database identifier.
	ID int64

	// Timestamp is when the comparison ran.
	Timestamp time.Time

	// FileA and FileB are the compared input paths.
	FileA string
	FileB string

	// Summary holds the partition counts of the run.
	Summary model.Summary
}

// SaveComparison stores a comparison run and returns its ID.
func (hdb *HistoryDB) SaveComparison(ctx context.Context, report *model.ComparisonReport, fileA, fileB string) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	summary := report.Summary()
	query := `
	INSERT INTO comparisons (file_a, file_b, only_in_a, only_in_b, differing, identical, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		fileA,
		fileB,
		summary.OnlyInA,
		summary.OnlyInB,
		summary.Differing,
		summary.Identical,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert comparison: %w", err)
	}

	return result.LastInsertId()
}

// ListComparisons returns metadata for all stored runs, newest first.
func (hdb *HistoryDB) ListComparisons(ctx context.Context) ([]RunMetadata, error) {
	query := `
	SELECT id, timestamp, file_a, file_b, only_in_a, only_in_b, differing, identical
	FROM comparisons
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		var run RunMetadata
		if err := rows.Scan(
			&run.ID,
			&run.Timestamp,
			&run.FileA,
			&run.FileB,
			&run.Summary.OnlyInA,
			&run.Summary.OnlyInB,
			&run.Summary.Differing,
			&run.Summary.Identical,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comparison row: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetReportJSON returns the stored serialized report for the given run ID.
// It returns ErrRunNotFound when no run has that ID.
func (hdb *HistoryDB) GetReportJSON(ctx context.Context, id int64) ([]byte, error) {
	query := `SELECT report_json FROM comparisons WHERE id = ?`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query comparison %d: %w", id, err)
	}

	return []byte(reportJSON), nil
}
