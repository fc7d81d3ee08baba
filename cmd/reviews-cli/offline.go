package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"avaliacoes/internal/reviews"
	"avaliacoes/pkg/database"
)

func newExportCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every review to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepo(cmd.Context(), opts.dbPath, func(ctx context.Context, repo *reviews.Repo) error {
				items, err := repo.List(ctx)
				if err != nil {
					return err
				}
				b, err := json.MarshalIndent(items, "", "  ")
				if err != nil {
					return fmt.Errorf("encode reviews: %w", err)
				}
				if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
					return err
				}
				if err := os.WriteFile(out, b, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d reviews to %s\n", len(items), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", reviews.ExportFilename, "output JSON path")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace every review with the contents of a JSON array file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			elems, ok := reviews.DecodeArray(body)
			if !ok {
				return fmt.Errorf("%s: array expected", in)
			}

			return withRepo(cmd.Context(), opts.dbPath, func(ctx context.Context, repo *reviews.Repo) error {
				rows := reviews.Prepare(elems, time.Now())
				if err := repo.ReplaceAll(ctx, rows); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "submitted %d, stored %d\n", len(elems), len(rows))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in, "in", reviews.ExportFilename, "input JSON path")
	return cmd
}

func withRepo(ctx context.Context, path string, fn func(context.Context, *reviews.Repo) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.Open(database.Config{Path: path})
	if err != nil {
		return err
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	repo, err := reviews.NewRepo(ctx, db)
	if err != nil {
		return err
	}
	defer repo.Close()

	return fn(ctx, repo)
}
