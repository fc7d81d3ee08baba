package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"avaliacoes/pkg/database"
)

const defaultBaseURL = "http://localhost:3000"

type options struct {
	dbPath  string
	baseURL string
	client  *http.Client
}

func newRootCmd() *cobra.Command {
	opts := &options{
		client: &http.Client{Timeout: 15 * time.Second},
	}

	root := &cobra.Command{
		Use:          "reviews-cli",
		Short:        "Manage the reviews store",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", database.DefaultConfig().Path, "database file (offline commands)")
	root.PersistentFlags().StringVar(&opts.baseURL, "api", defaultBaseURL, "API base URL (remote commands)")

	root.AddCommand(
		newExportCmd(opts),
		newImportCmd(opts),
		newListCmd(opts),
		newGetCmd(opts),
		newDeleteCmd(opts),
		newWatchCmd(opts),
	)
	return root
}
