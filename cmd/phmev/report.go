package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gyeh/phmevstats/internal/aggregate"
	"github.com/gyeh/phmevstats/internal/db"
	"github.com/gyeh/phmevstats/internal/exitcode"
	"github.com/gyeh/phmevstats/internal/export"
	"github.com/gyeh/phmevstats/internal/filter"
	"github.com/gyeh/phmevstats/internal/locale"
	"github.com/gyeh/phmevstats/internal/logging"
	"github.com/gyeh/phmevstats/internal/source"
)

var reportFilters dimFlags

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Filter, aggregate, and rank PHMEV records",
	Long: "Runs one analysis view (establishments, products, molecules, cities) over " +
		"the filtered record set and prints the top-N groups. With --file the whole " +
		"dataset is loaded in memory; with a DSN the filter and GROUP BY are pushed " +
		"down to Postgres.",
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Analyze a CSV/Parquet file instead of the database")
	f.Int64Var(&cfg.MaxRows, "max-rows", 0, "Cap rows loaded from --file (0 = all)")
	f.StringVar(&cfg.View, "view", "", "Analysis view: etablissements, produits, molecules, villes")
	f.StringVar(&cfg.SortBy, "sort", string(aggregate.ByBoxes), "Sort measure: boites or rem")
	f.IntVar(&cfg.TopN, "top", 0, "Number of groups to keep (clamped to 5..100)")
	f.StringVar(&cfg.OutPath, "out", "", "Write the result as a ;-delimited CSV to this path")
	reportFilters.register(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.View == "" {
		cfg.View = "etablissements"
	}
	view, err := aggregate.ViewByName(cfg.View)
	if err != nil {
		log.Error().Err(err).Msg("invalid view")
		os.Exit(exitcode.UsageError)
	}
	measure, err := aggregate.MeasureByName(cfg.SortBy)
	if err != nil {
		log.Error().Err(err).Msg("invalid sort measure")
		os.Exit(exitcode.UsageError)
	}
	sel := reportFilters.selection()
	if err := sel.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid filters")
		os.Exit(exitcode.UsageError)
	}
	n := cfg.ClampTopN()

	var rows []aggregate.Row
	switch {
	case cfg.FilePath != "":
		rows, err = reportFromFile(ctx, sel, view, measure, n)
	case cfg.DSN != "":
		rows, err = reportFromDB(ctx, sel, view, measure, n)
	default:
		log.Error().Msg("need --file or --dsn/PHMEV_DB_URL")
		os.Exit(exitcode.UsageError)
	}
	if err != nil {
		log.Error().Err(err).Msg("report failed")
		if errors.Is(err, source.ErrUnavailable) {
			os.Exit(exitcode.DBConnError)
		}
		os.Exit(exitcode.QueryError)
	}

	if cfg.OutPath != "" {
		if err := writeReportCSV(cfg.OutPath, view, rows); err != nil {
			log.Error().Err(err).Msg("csv export failed")
			os.Exit(exitcode.QueryError)
		}
		log.Info().Str("path", cfg.OutPath).Int("rows", len(rows)).Msg("csv export written")
		return nil
	}

	printReport(view, measure, rows)
	return nil
}

func reportFromFile(ctx context.Context, sel filter.Selection, view aggregate.View, m aggregate.Measure, n int) ([]aggregate.Row, error) {
	src, err := openFileSource(cfg.FilePath, cfg.MaxRows)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	records, err := src.Fetch(ctx, sel)
	if err != nil {
		return nil, err
	}
	rows, err := aggregate.Aggregate(records, view, cfg.ExclusionLabels())
	if err != nil {
		return nil, err
	}
	return aggregate.TopN(rows, m, n), nil
}

func reportFromDB(ctx context.Context, sel filter.Selection, view aggregate.View, m aggregate.Measure, n int) ([]aggregate.Row, error) {
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", source.ErrUnavailable, err)
	}
	defer pool.Close()

	return source.NewPostgres(pool).AggregateView(ctx, sel, view, cfg.ExclusionLabels(), m, n)
}

func writeReportCSV(path string, view aggregate.View, rows []aggregate.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := export.WriteCSV(f, view, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printReport(view aggregate.View, m aggregate.Measure, rows []aggregate.Row) {
	if len(rows) == 0 {
		fmt.Println("No records match the current filters.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	headers := append([]string{}, view.Headers...)
	headers = append(headers, "Boîtes", "Remboursé", "Coût/boîte", "Taux", "% total")
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for i := range rows {
		r := &rows[i]
		pct := r.PctBoxes
		if m == aggregate.ByReimbursed {
			pct = r.PctReimbursed
		}
		cols := append([]string{}, r.Key...)
		cols = append(cols,
			locale.FormatCount(r.Boxes),
			locale.FormatAmount(r.Reimbursed),
			locale.FormatAmount(r.CostPerBox),
			locale.FormatPercent(r.Rate),
			locale.FormatPercent(pct),
		)
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	w.Flush()
}
