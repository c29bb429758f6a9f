package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"prodedup/config"
	"prodedup/dedup"
	"prodedup/logging"
	"prodedup/output"
	"prodedup/storage"
)

var (
	runDBPath    string
	runStatsPath string
	runNoStore   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Filter new export files against historical files from the same domain",
	Long: `Process every new file: resolve its columns onto Title/Url/Image/Price,
normalize prices, locate historical files sharing the file's domain token,
and strip rows whose (title, price) pair already appeared there.

Each file with surviving rows produces <stem>_filtered.csv in the output
directory. The run summary is written to the configured stats file and
recorded in the local SQLite database for "prodedup history".

A file whose required columns cannot be resolved is skipped and noted in the
summary; a historical file with unresolvable columns is skipped for that
comparison only. Finding no input files at all aborts the run.`,
	Example: `
  # Run with the active configuration
  prodedup run

  # Write the summary to a different file (.xlsx selects workbook output)
  prodedup run --stats ./stats/stats.xlsx

  # Keep the run out of the history database
  prodedup run --no-store
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		statsPath := cfg.Paths.StatsPath
		if strings.TrimSpace(runStatsPath) != "" {
			statsPath = runStatsPath
		}

		logger, err := logging.New(os.Stderr, cfg.Logging.Level)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.Paths.OutputPath, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(statsPath), 0o755); err != nil {
			return fmt.Errorf("create stats directory: %w", err)
		}

		startedAt := time.Now()
		result, err := dedup.NewRunner(*cfg, logger).Run()
		if err != nil {
			logger.Error().Err(err).Msg("run aborted")
			return err
		}
		finishedAt := time.Now()

		if err := output.WriteStats(statsPath, result.Stats); err != nil {
			return err
		}

		if !runNoStore {
			store, err := storage.OpenSQLite(runDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runID, err := store.RecordRun(startedAt, finishedAt, result.FilesProcessed, result.Stats)
			if err != nil {
				return err
			}
			logger.Info().Int64("run_id", runID).Msg("run recorded")
		}

		fmt.Printf("Run completed. Files: %d, Output tables: %d, Stats: %s\n",
			result.FilesProcessed,
			len(result.Tables),
			statsPath,
		)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runDBPath, "db", "./prodedup.db", "Path to local SQLite run-history database")
	runCmd.Flags().StringVar(&runStatsPath, "stats", "", "Stats file override (.csv or .xlsx; default from config)")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "Skip recording this run in the history database")
}
