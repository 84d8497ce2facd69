// Package incremental remembers task fingerprints between builds so that
// unchanged tasks can be skipped.
package incremental

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/tasks"
	"git.home.luguber.info/inful/taxogen/internal/util/sets"
)

// Store is a SQLite-backed fingerprint store keyed by full task name.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the store at dbPath. Use ":memory:" for a
// throwaway store.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, errors.WrapError(err, errors.CategoryStorage, "failed to create state directory").
				WithContext(errors.KeyPath, dbPath).
				Build()
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to open state database").
			WithContext(errors.KeyPath, dbPath).
			Build()
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to initialize state schema").
			WithContext(errors.KeyPath, dbPath).
			Build()
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fingerprints (
		name TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		targets TEXT,
		updated INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func storageError(err error, op, name string) error {
	b := errors.WrapError(err, errors.CategoryStorage, "failed to "+op)
	if name != "" {
		b = b.WithContext("task", name)
	}
	return b.Build()
}

// Get returns the stored fingerprint of a task.
func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fp string
	err := s.db.QueryRowContext(ctx, "SELECT fingerprint FROM fingerprints WHERE name = ?", name).Scan(&fp)
	switch {
	case err == sql.ErrNoRows:
		return "", false, nil
	case err != nil:
		return "", false, storageError(err, "read fingerprint", name)
	}
	return fp, true, nil
}

// Put stores the fingerprint of a task, replacing any previous value.
func (s *Store) Put(ctx context.Context, name, fingerprint string, targets []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(ctx, s.db, name, fingerprint, targets)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) put(ctx context.Context, db execer, name, fingerprint string, targets []string) error {
	targetsJSON, err := json.Marshal(targets)
	if err != nil {
		return storageError(err, "encode targets", name)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO fingerprints (name, fingerprint, targets, updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET fingerprint = excluded.fingerprint, targets = excluded.targets, updated = excluded.updated`,
		name, fingerprint, string(targetsJSON), time.Now().Unix(),
	)
	if err != nil {
		return storageError(err, "write fingerprint", name)
	}
	return nil
}

// UpToDate reports whether the stored fingerprint matches the task.
func (s *Store) UpToDate(ctx context.Context, t *tasks.Task) (bool, error) {
	fp, ok, err := s.Get(ctx, t.FullName())
	if err != nil || !ok {
		return false, err
	}
	return fp == t.Uptodate, nil
}

// Stale returns the tasks whose fingerprint differs from the stored one,
// in their original order.
func (s *Store) Stale(ctx context.Context, ts []*tasks.Task) ([]*tasks.Task, error) {
	var out []*tasks.Task
	for _, t := range ts {
		ok, err := s.UpToDate(ctx, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// Record stores the fingerprints of all tasks in one transaction.
func (s *Store) Record(ctx context.Context, ts []*tasks.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError(err, "begin transaction", "")
	}
	for _, t := range ts {
		if err := s.put(ctx, tx, t.FullName(), t.Uptodate, t.Targets); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return storageError(err, "commit fingerprints", "")
	}
	return nil
}

// Prune deletes every task not named in keep and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, keep []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM fingerprints")
	if err != nil {
		return 0, storageError(err, "list fingerprints", "")
	}
	kept := sets.New(keep...)
	var drop []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return 0, storageError(err, "scan fingerprint", "")
		}
		if !kept.Has(name) {
			drop = append(drop, name)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, storageError(err, "iterate fingerprints", "")
	}
	_ = rows.Close()

	for _, name := range drop {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM fingerprints WHERE name = ?", name); err != nil {
			return 0, storageError(err, "delete fingerprint", name)
		}
	}
	return len(drop), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
