package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mjarosz/clipdown/sqlite"
)

func TestDB_OpenCreatesSchema(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	defer db.Close()

	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		"INSERT INTO clips (id, url, created_at) VALUES (?, ?, ?)",
		"clip1", "https://example.com/a", "2025-01-01T00:00:00Z")
	require.NoError(t, err)

	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_clips_domain'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "idx_clips_domain", name)
}

func TestDB_ReopenKeepsData(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "clips.db")
	ctx := context.Background()

	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	_, err := db.ExecContext(ctx,
		"INSERT INTO clips (id, url, created_at) VALUES (?, ?, ?)",
		"clip1", "https://example.com/a", "2025-01-01T00:00:00Z")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Schema creation must be a no-op on an existing database.
	db = sqlite.NewDB(path)
	require.NoError(t, db.Open())
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clips").Scan(&count))
	require.Equal(t, 1, count)
}

func TestDB_JournalMode(t *testing.T) {
	t.Parallel()

	t.Run("WAL for file databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "clips.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		var mode string
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode))
		require.Equal(t, "wal", mode)
	})

	t.Run("in-memory databases skip WAL", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		var mode string
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode))
		require.Equal(t, "memory", mode)
	})
}

func TestDB_OpenInvalidPath(t *testing.T) {
	t.Parallel()

	db := sqlite.NewDB("/nonexistent/path/clips.db")
	require.Error(t, db.Open())
}
