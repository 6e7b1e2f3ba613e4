package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use: "jobboard-api",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(runCmd)
}
