package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Store is the SQLite-backed record of items and their relationships.
//
// A Store holds an exclusive lock on its database for its whole lifetime, so at
// most one process writes at a time. Within a process, callers are expected to
// funnel every access through a single goroutine (see package datalayer).
type Store struct {
	path string
	sql  *sql.DB
	lock *dbLock
	log  *slog.Logger
	now  func() time.Time
}

// Open opens (creating if needed) the database at path. The parent directory is
// created. Open fails with [ErrLocked] when another process holds the database
// and with [ErrSchemaVersion] when the file was written by an unknown schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	return openWithTimeout(ctx, path, logger, LockTimeout)
}

func openWithTimeout(ctx context.Context, path string, logger *slog.Logger, lockTimeout time.Duration) (*Store, error) {
	if ctx == nil {
		return nil, errors.New("open store: context is nil")
	}

	if path == "" {
		return nil, errors.New("open store: path is empty")
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path = filepath.Clean(path)

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return nil, fmt.Errorf("open store: create directory: %w", err)
	}

	lock, err := acquireDBLock(path, lockTimeout)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	db, err := openSqlite(ctx, path)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open store: %w", err), lock.release())
	}

	err = migrate(ctx, db)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open store: %w", err), db.Close(), lock.release())
	}

	logger.Debug("store opened", "path", path)

	return &Store{
		path: path,
		sql:  db,
		lock: lock,
		log:  logger,
		now:  time.Now,
	}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the SQLite handle and the database lock.
func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}

	var closeErr error

	err := s.sql.Close()
	if err != nil {
		closeErr = fmt.Errorf("close sqlite: %w", err)
	}

	s.sql = nil

	return errors.Join(closeErr, s.lock.release())
}

// withTx runs fn inside a write transaction, committing when fn returns nil.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	if ctx == nil {
		return fmt.Errorf("%s: context is nil", op)
	}

	if s == nil || s.sql == nil {
		return fmt.Errorf("%s: %w", op, ErrNotOpen)
	}

	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}

	err = fn(tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			return errors.Join(fmt.Errorf("%s: %w", op, err), fmt.Errorf("rollback: %w", rollbackErr))
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}
