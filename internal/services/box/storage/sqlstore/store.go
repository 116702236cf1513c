// Package sqlstore implements the box storage contracts on database/sql.
//
// Dialect-specific behavior (placeholders, IN-list expansion, show-order
// locking) is injected through Dialect so the SQLite and PostgreSQL backends
// share one set of queries.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/louisbranch/boxsync/internal/platform/storage/sqlmigrate"
	"github.com/louisbranch/boxsync/internal/services/box/storage"
)

// Querier is the subset of *sql.DB and *sql.Tx used by the store.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures the SQL differences between backends.
type Dialect struct {
	Name        string
	Placeholder sqlmigrate.Placeholder
	// In renders a membership predicate for column over values using `?`
	// placeholders, returning the fragment and its arguments.
	In func(column string, values []string) (string, []any)
	// LockPosition serializes show-order assignment for a position until the
	// transaction ends. Nil when transactions already hold an exclusive write
	// lock from the start.
	LockPosition func(ctx context.Context, q Querier, position string) error
}

// Store provides a SQL-backed box store.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open, migrated database.
func New(db *sql.DB, dialect Dialect) *Store {
	if dialect.In == nil {
		dialect.In = ExpandIn
	}
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle for maintenance tooling and tests.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Dialect returns the backend name.
func (s *Store) Dialect() string {
	return s.dialect.Name
}

// Close closes the underlying database. It is nil-safe so callers can defer
// it on every startup path.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RunInTx implements storage.Store.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	if fn == nil {
		return fmt.Errorf("transaction function is required")
	}
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, s.withTx(sqlTx)); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) withTx(tx *sql.Tx) *txStore {
	return &txStore{q: tx, dialect: s.dialect}
}

func (s *Store) reader() *txStore {
	return &txStore{q: s.db, dialect: s.dialect}
}

// ExpandIn renders `column IN (?, ?, ...)`. An empty list renders a predicate
// that matches nothing.
func ExpandIn(column string, values []string) (string, []any) {
	if len(values) == 0 {
		return "1 = 0", nil
	}
	args := make([]any, 0, len(values))
	fragment := column + " IN ("
	for i, value := range values {
		if i > 0 {
			fragment += ", "
		}
		fragment += "?"
		args = append(args, value)
	}
	return fragment + ")", args
}
