package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "assessor",
	Short: "RVTools migration assessor",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(analyzeCmd)
}
