package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prodedup/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prodedup",
	Short: "Deduplicate product listing exports against previously processed files.",
	Long: `prodedup filters newly received product listing exports (CSV, Excel) against
historical exports from the same source. Files are grouped by a domain token
derived from the file name; rows already present in that domain's history
(matched by normalized title and price) are stripped, and surviving rows are
written as filtered CSV output alongside per-file statistics.

Supported input formats:
- Excel: .xlsx
- CSV: .csv
`,
	Example: `
  # Create configuration file
  prodedup config create

  # Filter all new files against the historical files
  prodedup run

  # Filter and write the run summary as a workbook
  prodedup run --stats ./stats/stats.xlsx

  # Show past runs recorded in the local database
  prodedup history

  # Show per-file outcomes of one run
  prodedup history --run 3

  # Browse run history in the local web UI
  prodedup serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.prodedup.yaml, then ./.prodedup.yaml)")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	return cmd != nil && cmd.Name() == "run"
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".prodedup" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".prodedup")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: prodedup config create")
	}
}
