package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jonathan/order-normalizer/internal/config"
	"github.com/jonathan/order-normalizer/internal/export"
	"github.com/jonathan/order-normalizer/internal/loader"
	"github.com/jonathan/order-normalizer/internal/normalize"
	"github.com/spf13/cobra"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten",
	Short: "Flatten NDJSON order records into relational tables",
	Long:  "Loads every .json file in the input directory as newline-delimited JSON order records, normalizes them into seven flat tables, and writes one CSV file per table to the output directory.",
	RunE:  runFlatten,
}

var (
	flattenInputDir   string
	flattenOutputDir  string
	flattenConfigFile string
	flattenVerbose    bool
)

func init() {
	flattenCmd.Flags().StringVarP(&flattenInputDir, "in", "i", "", "Directory containing NDJSON .json files")
	flattenCmd.Flags().StringVarP(&flattenOutputDir, "out", "o", "", "Directory to write table CSV files to (default \"tables\")")
	flattenCmd.Flags().StringVarP(&flattenConfigFile, "config", "c", "", "Path to JSON config file (flags take precedence)")
	flattenCmd.Flags().BoolVarP(&flattenVerbose, "verbose", "v", false, "Print per-table row counts")

	rootCmd.AddCommand(flattenCmd)
}

func runFlatten(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Input:   flattenInputDir,
		Output:  flattenOutputDir,
		Verbose: flattenVerbose,
	}

	if flattenConfigFile != "" {
		fileCfg, err := config.LoadConfig(flattenConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	if cfg.Output == "" {
		cfg.Output = "tables"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	records, err := loader.LoadObjectsFromDir(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to load order records: %w", err)
	}

	tables := normalize.ExtractTables(records)

	if err := export.WriteTables(cfg.Output, tables); err != nil {
		return fmt.Errorf("failed to export tables: %w", err)
	}

	if cfg.Verbose {
		names := make([]string, 0, len(tables))
		for name := range tables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(os.Stdout, "%s: %d rows\n", name, tables[name].Len())
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Flattened %d records into %s\n", len(records), cfg.Output)

	return nil
}
