package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage prodedup configuration file values.",
	Long: `Create and display the prodedup configuration file.

The configuration stores the directory layout of a run:
- paths.output_path
- paths.new_files_path
- paths.old_files_path
- paths.stats_path
- logging.level`,
	Example: `
  # Create default config in $HOME/.prodedup.yaml
  prodedup config create

  # Show active config and source file
  prodedup config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
