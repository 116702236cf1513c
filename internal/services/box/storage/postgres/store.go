// Package postgres opens the box store on a PostgreSQL database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/louisbranch/boxsync/internal/platform/storage/sqlmigrate"
	"github.com/louisbranch/boxsync/internal/platform/timeouts"
	"github.com/louisbranch/boxsync/internal/services/box/storage/postgres/migrations"
	"github.com/louisbranch/boxsync/internal/services/box/storage/sqlstore"
)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

// Dialect returns the PostgreSQL dialect. Show-order assignment takes a
// transaction-scoped advisory lock keyed by position.
func Dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Name:         DriverName,
		Placeholder:  sqlmigrate.Dollar,
		In:           anyIn,
		LockPosition: lockPosition,
	}
}

// Open connects to dsn and applies migrations.
func Open(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	sqlDB, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.DBPing)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	if err := sqlmigrate.ApplyMigrations(ctx, sqlDB, sqlmigrate.Dollar, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlstore.New(sqlDB, Dialect()), nil
}

func anyIn(column string, values []string) (string, []any) {
	if len(values) == 0 {
		return "1 = 0", nil
	}
	return column + " = ANY(?)", []any{pq.Array(values)}
}

func lockPosition(ctx context.Context, q sqlstore.Querier, position string) error {
	_, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, position)
	return err
}
