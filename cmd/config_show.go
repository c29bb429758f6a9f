package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prodedup/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  prodedup config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("paths.output_path: %s\n", cfg.Paths.OutputPath)
			fmt.Printf("paths.new_files_path: %s\n", cfg.Paths.NewFilesPath)
			fmt.Printf("paths.old_files_path: %s\n", cfg.Paths.OldFilesPath)
			fmt.Printf("paths.stats_path: %s\n", cfg.Paths.StatsPath)
			fmt.Printf("logging.level: %s\n", cfg.Logging.Level)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
