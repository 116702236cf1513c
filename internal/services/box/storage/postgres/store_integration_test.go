//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/louisbranch/boxsync/internal/services/box/storage/storagetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("boxsync"),
		tcpostgres.WithUsername("boxsync"),
		tcpostgres.WithPassword("boxsync"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}
	return dsn
}

func TestStoreIntegration(t *testing.T) {
	dsn := startPostgres(t)

	storagetest.Run(t, func(t *testing.T) storagetest.Backend {
		t.Helper()
		resetSchema(t, dsn)
		store, err := Open(context.Background(), dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func resetSchema(t *testing.T, dsn string) {
	t.Helper()
	db, err := sql.Open(DriverName, dsn)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`DROP SCHEMA public CASCADE; CREATE SCHEMA public;`)
	require.NoError(t, err)
}
