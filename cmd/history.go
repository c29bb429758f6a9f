package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prodedup/storage"
)

var (
	historyDBPath string
	historyRunID  int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded deduplication runs and per-file outcomes",
	Long: `List the runs recorded in the local SQLite database.

Without flags, one line per run is printed, most recent first. With --run,
the per-file outcome records of that run are printed instead; these carry
the same columns as the stats file (file name, products before, products
after, error).`,
	Example: `
  # List all recorded runs
  prodedup history

  # Show per-file outcomes of run 3
  prodedup history --run 3
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.OpenSQLite(historyDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if historyRunID > 0 {
			return printRunStats(store, historyRunID)
		}
		return printRuns(store)
	},
}

func printRuns(store *storage.Store) error {
	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("Run %d: started %s, duration %s, files %d\n",
			run.ID,
			run.StartedAt.Format(time.RFC3339),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
			run.FilesProcessed,
		)
	}
	return nil
}

func printRunStats(store *storage.Store, runID int64) error {
	run, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	stats, err := store.ListRunStats(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d (%s), files %d:\n", run.ID, run.StartedAt.Format(time.RFC3339), run.FilesProcessed)
	for _, record := range stats {
		fmt.Printf("  %s: before=%s after=%s", record.FileName, countLabel(record.ProductsBefore), countLabel(record.ProductsAfter))
		if record.Error != "" {
			fmt.Printf(" error=%q", record.Error)
		}
		fmt.Println()
	}
	return nil
}

func countLabel(count *int) string {
	if count == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *count)
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDBPath, "db", "./prodedup.db", "Path to local SQLite run-history database")
	historyCmd.Flags().Int64Var(&historyRunID, "run", 0, "Show per-file outcomes of one run")
}
