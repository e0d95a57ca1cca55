package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/phmevstats/internal/db"
	"github.com/gyeh/phmevstats/internal/exitcode"
	"github.com/gyeh/phmevstats/internal/ingest"
	"github.com/gyeh/phmevstats/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a PHMEV CSV or Parquet file into the database",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to CSV or Parquet file (required)")
	f.Int64Var(&cfg.MaxRows, "max-rows", 0, "Cap the number of rows loaded (0 = all)")
	f.BoolVar(&cfg.Force, "force", false, "Reload even if file SHA already loaded")
	f.BoolVar(&cfg.KeepStaging, "keep-staging", false, "Keep staging rows after transform")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := ingest.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "stage":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.QueryError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.QueryError)
	}

	fmt.Printf("Load complete: %d rows staged, %d rows in serving table (%.1fs)\n",
		summary.RowsStaged, summary.RowsInserted, summary.DurationTotal.Seconds())
	return nil
}
