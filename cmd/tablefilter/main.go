package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruminaider/tablefilter/internal/paths"
)

var version = "0.1.0"

var (
	settingsFile string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:          "tablefilter",
	Short:        "Filter tabular data by column from the terminal",
	Long:         "tablefilter shows a table definition file with a filter control per column: free text, single-select lists, checkboxes and multiselect dropdowns.",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tablefilter %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", paths.SettingsFile(), "Settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(addFilterCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
