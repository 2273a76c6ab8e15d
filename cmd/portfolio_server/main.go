// Package main provides the entry point for the Resume Portfolio HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio_server",
	Short: "Resume Portfolio HTTP API Server",
	Long:  "Resume Portfolio extracts structured resume data from uploaded documents, evaluates job fit with a generative model, and publishes resume portfolios via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
