package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/phmevstats/internal/db"
	"github.com/gyeh/phmevstats/internal/exitcode"
	"github.com/gyeh/phmevstats/internal/filter"
	"github.com/gyeh/phmevstats/internal/logging"
	"github.com/gyeh/phmevstats/internal/model"
	"github.com/gyeh/phmevstats/internal/source"
)

var (
	optionsFilters dimFlags
	optionsDim     string
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the candidate values of one dimension under the other filters",
	Long: "Computes the cascading option set a UI would offer: the distinct values of " +
		"--dim over the records passing every other dimension's filter. The queried " +
		"dimension's own filter is released so an already-picked value stays visible.",
	RunE: runOptions,
}

func init() {
	f := optionsCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Read from a CSV/Parquet file instead of the database")
	f.Int64Var(&cfg.MaxRows, "max-rows", 0, "Cap rows loaded from --file (0 = all)")
	f.StringVar(&optionsDim, "dim", "", "Dimension to list values for (required)")
	_ = optionsCmd.MarkFlagRequired("dim")
	optionsFilters.register(optionsCmd)
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if _, ok := model.DimensionByName(optionsDim); !ok {
		log.Error().Str("dim", optionsDim).Strs("valid", model.DimensionNames()).Msg("unknown dimension")
		os.Exit(exitcode.UsageError)
	}
	sel := optionsFilters.selection()
	if err := sel.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid filters")
		os.Exit(exitcode.UsageError)
	}

	var values []string
	var err error
	switch {
	case cfg.FilePath != "":
		values, err = optionsFromFile(ctx, sel)
	case cfg.DSN != "":
		values, err = optionsFromDB(ctx, sel)
	default:
		log.Error().Msg("need --file or --dsn/PHMEV_DB_URL")
		os.Exit(exitcode.UsageError)
	}
	if err != nil {
		log.Error().Err(err).Msg("options failed")
		os.Exit(exitcode.QueryError)
	}

	for _, v := range values {
		fmt.Println(v)
	}
	return nil
}

func optionsFromFile(ctx context.Context, sel filter.Selection) ([]string, error) {
	src, err := openFileSource(cfg.FilePath, cfg.MaxRows)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// Fetch with the dimension's own filter released, then project.
	records, err := src.Fetch(ctx, sel.Without(optionsDim))
	if err != nil {
		return nil, err
	}
	return filter.Options(records, filter.Selection{}, optionsDim)
}

func optionsFromDB(ctx context.Context, sel filter.Selection) ([]string, error) {
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	return source.NewPostgres(pool).Options(ctx, sel, optionsDim)
}
