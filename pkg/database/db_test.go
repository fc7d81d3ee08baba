package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDataDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "data", "db.sqlite")
	db, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{})
	require.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "db.sqlite")
	db, err := Open(Config{Path: path})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	_, err = db.Exec(`INSERT INTO reviews (id, title, comment, rating, created) VALUES ('r1', 't', 'c', 4, 1)`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Close())

	// a second process start sees the same row
	db, err = Open(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestApplySchemaMalformedScript(t *testing.T) {
	t.Parallel()

	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "db.sqlite")})
	require.NoError(t, err)
	defer db.Close()

	err = ApplySchema(db, `CREATE TABLE reviews (`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "apply schema")
}

func TestDefaultConfigEnvOverride(t *testing.T) {
	t.Setenv("AVALIACOES_DB_PATH", "/tmp/custom.sqlite")
	require.Equal(t, "/tmp/custom.sqlite", DefaultConfig().Path)

	t.Setenv("AVALIACOES_DB_PATH", "")
	require.Equal(t, filepath.FromSlash("data/db.sqlite"), filepath.FromSlash(DefaultConfig().Path))
}
