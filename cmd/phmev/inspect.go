package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/phmevstats/internal/exitcode"
	"github.com/gyeh/phmevstats/internal/filter"
	"github.com/gyeh/phmevstats/internal/locale"
	"github.com/gyeh/phmevstats/internal/logging"
	"github.com/gyeh/phmevstats/internal/model"
	"github.com/gyeh/phmevstats/internal/normalize"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dry-run validation and stats for a file (no writes)",
	RunE:  runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to CSV or Parquet file (required)")
	f.Int64Var(&cfg.MaxRows, "max-rows", 0, "Cap rows inspected (0 = all)")
	_ = inspectCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}
	stat, err := os.Stat(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ValidationError)
	}

	src, err := openFileSource(cfg.FilePath, cfg.MaxRows)
	if err != nil {
		log.Error().Err(err).Msg("failed to open file")
		os.Exit(exitcode.ValidationError)
	}
	defer src.Close()

	records, err := src.Fetch(context.Background(), filter.Selection{})
	if err != nil {
		log.Error().Err(err).Msg("failed to read records")
		os.Exit(exitcode.ValidationError)
	}

	var totalBoxes int64
	var totalReimbursed float64
	var inconsistent, anonymized, zeroAmount int64
	anonymizedSet := make(map[string]struct{}, len(cfg.ExclusionLabels()))
	for _, l := range cfg.ExclusionLabels() {
		anonymizedSet[l] = struct{}{}
	}
	for i := range records {
		r := &records[i]
		totalBoxes += r.Boxes
		totalReimbursed += r.Reimbursed
		if !r.HierarchyConsistent() {
			inconsistent++
		}
		if _, ok := anonymizedSet[r.ProductLabel]; ok {
			anonymized++
		}
		if r.Reimbursed == 0 {
			zeroAmount++
		}
	}

	fmt.Println("=== phmev inspect ===")
	fmt.Printf("File:       %s\n", cfg.FilePath)
	fmt.Printf("SHA-256:    %s\n", sha)
	fmt.Printf("Size:       %d bytes\n", stat.Size())
	fmt.Printf("Rows:       %d\n", len(records))
	fmt.Printf("Boîtes:     %s\n", locale.FormatCount(totalBoxes))
	fmt.Printf("Remboursé:  %s\n", locale.FormatAmount(totalReimbursed))
	fmt.Println()
	fmt.Printf("ATC hierarchy inconsistencies: %d\n", inconsistent)
	fmt.Printf("Anonymized product labels:     %d\n", anonymized)
	fmt.Printf("Zero/unparseable amounts:      %d\n", zeroAmount)
	fmt.Println()
	fmt.Println("Distinct values per dimension:")
	for _, d := range model.AllDimensions {
		vals, err := filter.Options(records, filter.Selection{}, d.Name)
		if err != nil {
			continue
		}
		fmt.Printf("  %-14s %6d\n", d.Name, len(vals))
	}

	return nil
}
