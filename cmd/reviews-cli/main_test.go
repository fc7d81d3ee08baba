package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"avaliacoes/pkg/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportThenExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "db.sqlite")
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out", "export.json")

	require.NoError(t, os.WriteFile(in, []byte(`[
		{"id":"a","title":"T","comment":"C","rating":5,"created":1},
		{"id":"b","title":"T","comment":"C"}
	]`), 0o644))

	stdout, err := run(t, "import", "--db", dbPath, "--in", in)
	require.NoError(t, err)
	require.Contains(t, stdout, "submitted 2, stored 1")

	stdout, err = run(t, "export", "--db", dbPath, "--out", out)
	require.NoError(t, err)
	require.Contains(t, stdout, "exported 1 reviews")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var items []models.Review
	require.NoError(t, json.Unmarshal(b, &items))
	require.Len(t, items, 1)
	require.Equal(t, "a", items[0].ID)
	require.Equal(t, int64(1), items[0].Created)
}

func TestImportRejectsNonArrayFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"id":"a"}`), 0o644))

	_, err := run(t, "import", "--db", filepath.Join(dir, "db.sqlite"), "--in", in)
	require.Error(t, err)
	require.Contains(t, err.Error(), "array expected")
}

func TestRemoteCommands(t *testing.T) {
	t.Parallel()

	var deleted string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reviews", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a","title":"T","comment":"C","rating":5,"name":null,"email":null,"created":1}]`))
	})
	mux.HandleFunc("GET /api/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "a" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"a","title":"T","comment":"C","rating":5,"name":null,"email":null,"created":1}`))
	})
	mux.HandleFunc("DELETE /api/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = r.PathValue("id")
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	stdout, err := run(t, "list", "--api", srv.URL)
	require.NoError(t, err)
	require.Contains(t, stdout, `"id": "a"`)

	stdout, err = run(t, "get", "a", "--api", srv.URL)
	require.NoError(t, err)
	require.Contains(t, stdout, `"title": "T"`)

	_, err = run(t, "get", "zzz", "--api", srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")

	stdout, err = run(t, "delete", "a", "--api", srv.URL)
	require.NoError(t, err)
	require.Contains(t, stdout, "deleted")
	require.Equal(t, "a", deleted)
}
