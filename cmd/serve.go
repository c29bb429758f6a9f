package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"prodedup/storage"
	"prodedup/web"
)

var (
	servePort   int
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start local read-only web UI for run history",
	Long: `Start a local HTTP server listing recorded deduplication runs and the
per-file outcomes of each run. The UI is read-only.`,
	Example: `
  # Start local server on default port
  prodedup serve

  # Custom port and database
  prodedup serve --port 9090 --db ./prodedup.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(serveDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", servePort),
			Handler: web.NewServer(store),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://localhost:%d\n", servePort)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			return server.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port for the local web UI")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "./prodedup.db", "Path to local SQLite run-history database")
}
