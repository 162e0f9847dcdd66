// Package main provides the entry point for the order normalizer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "order_normalizer",
	Short: "Order record flattening tool",
	Long:  "Order Normalizer reads directories of newline-delimited JSON order records and decomposes each record into flat relational tables (orders, payment details, orderlines, addons, search data).",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
