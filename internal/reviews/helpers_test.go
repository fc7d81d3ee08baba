package reviews

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"avaliacoes/pkg/database"
	"avaliacoes/pkg/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "db.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))

	repo, err := NewRepo(context.Background(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func strPtr(s string) *string { return &s }

func numPtr(f float64) *models.Number {
	n := models.Number(f)
	return &n
}

func sample(id string) models.Review {
	return models.Review{
		ID:      id,
		Title:   "title " + id,
		Comment: "comment " + id,
		Rating:  4,
		Name:    strPtr("Ana"),
		Created: 1700000000000,
	}
}
