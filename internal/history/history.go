package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"image-browser/internal/logging"
)

// Default timeout for journal operations.
const defaultTimeout = 5 * time.Second

// Record is one committed rename.
type Record struct {
	OldPath   string
	NewPath   string
	OldName   string
	NewName   string
	RenamedAt time.Time
}

// Journal is a sqlite-backed log of committed renames. It is an audit
// trail for undoing batches by hand, not an index: the collection is
// always rebuilt from disk, never from the journal.
type Journal struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the journal database at path. The parent
// directory must already exist and be writable.
func Open(ctx context.Context, path string) (*Journal, error) {
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close journal after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	j := &Journal{db: db, path: path}

	if err := j.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close journal after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}

	logging.Debug("Rename journal opened at %s", path)
	return j, nil
}

func (j *Journal) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS renames (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		old_path TEXT NOT NULL,
		new_path TEXT NOT NULL,
		old_name TEXT NOT NULL,
		new_name TEXT NOT NULL,
		renamed_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_renames_renamed_at ON renames(renamed_at);
	`

	initCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := j.db.ExecContext(initCtx, schema)
	return err
}

// Append writes a batch of records in a single transaction.
func (j *Journal) Append(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO renames (old_path, new_path, old_name, new_name, renamed_at)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Error("failed to roll back journal transaction: %v", rbErr)
		}
		return fmt.Errorf("failed to prepare journal insert: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Warn("failed to close journal statement: %v", closeErr)
		}
	}()

	for _, r := range records {
		at := r.RenamedAt
		if at.IsZero() {
			at = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, r.OldPath, r.NewPath, r.OldName, r.NewName, at.Unix()); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error("failed to roll back journal transaction: %v", rbErr)
			}
			return fmt.Errorf("failed to insert journal record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal batch: %w", err)
	}

	return nil
}

// Recent returns the most recent records, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT old_path, new_path, old_name, new_name, renamed_at
		 FROM renames ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Warn("failed to close journal rows: %v", closeErr)
		}
	}()

	var records []Record
	for rows.Next() {
		var r Record
		var unix int64
		if err := rows.Scan(&r.OldPath, &r.NewPath, &r.OldName, &r.NewName, &unix); err != nil {
			return nil, fmt.Errorf("failed to scan journal record: %w", err)
		}
		r.RenamedAt = time.Unix(unix, 0)
		records = append(records, r)
	}

	return records, rows.Err()
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}
