package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/boxsync/internal/services/box/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) storagetest.Backend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boxes.db")
	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestStore(t *testing.T) {
	storagetest.Run(t, openTestStore)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxes.db")
	first, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.DB().QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestDSNEnablesImmediateTransactions(t *testing.T) {
	got := dsn("/tmp/x/../boxes.db")
	assert.Contains(t, got, "file:/tmp/boxes.db?")
	assert.Contains(t, got, "_txlock=immediate")
	assert.Contains(t, got, "_pragma=foreign_keys(1)")
	assert.Contains(t, got, "_pragma=busy_timeout(5000)")
}
