// Package cmd implements the CLI commands for the estate-scout server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "estate-scout",
	Short: "AI-assisted UAE real estate search backend",
	Long: "An API service that searches live UAE property listings through a " +
		"scraping provider, filters and normalizes the results, and generates " +
		"market analyses, article summaries, and chat replies with LLM backends.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
