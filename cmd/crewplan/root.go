package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crewplan",
	Short: "Project task breakdown generator",
	Long: `Crewplan turns a free-text project description into a role-by-role
task breakdown.

It selects the engineering roles a project needs from a keyword
taxonomy, asks Claude to draft tasks for each role, and parses the
response into a role -> tasks mapping. When the model call fails or
returns nothing usable, baseline tasks are substituted so a breakdown
is always produced.

With no arguments, launches interactive mode: type a description,
watch the breakdown come back, save the ones you want to keep.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
