// Package main provides the entry point for the series harvester CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "harvester",
	Short: "Content series harvester",
	Long:  "Harvester turns publisher content series into local Markdown archives: it discovers each series feed in a headless browser, saves every listed article as Markdown, and localizes embedded images.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
