// Package sqlite opens the box store on a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/louisbranch/boxsync/internal/platform/storage/sqlmigrate"
	"github.com/louisbranch/boxsync/internal/platform/timeouts"
	"github.com/louisbranch/boxsync/internal/services/box/storage/sqlite/migrations"
	"github.com/louisbranch/boxsync/internal/services/box/storage/sqlstore"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Dialect returns the SQLite dialect. Transactions begin with an immediate
// write lock, so show-order reads are already serialized.
func Dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Name:        DriverName,
		Placeholder: sqlmigrate.Question,
		In:          sqlstore.ExpandIn,
	}
}

// Open opens or creates the SQLite database at path and applies migrations.
func Open(ctx context.Context, path string) (*sqlstore.Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	sqlDB, err := sql.Open(DriverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlmigrate.ApplyMigrations(ctx, sqlDB, sqlmigrate.Question, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlstore.New(sqlDB, Dialect()), nil
}

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		filepath.Clean(path), timeouts.SQLiteBusy.Milliseconds())
}
