package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open creates the catalog database file (and its parent directory) if
// needed and returns a handle to it.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("platform/db: create dir: %w", err)
		}
	}

	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("platform/db: open: %w", err)
	}

	// SQLite allows one writer at a time; a single connection keeps
	// statements serialised and avoids SQLITE_BUSY on local use.
	handle.SetMaxOpenConns(1)

	if err := handle.PingContext(ctx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("platform/db: ping: %w", err)
	}

	if _, err := handle.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("platform/db: pragma: %w", err)
	}

	return handle, nil
}

// WithTx executes fn inside a transaction, committing on success and
// rolling back on error.
func WithTx(ctx context.Context, handle *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := handle.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("platform/db: begin tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("platform/db: commit tx: %w", err)
	}

	return nil
}
