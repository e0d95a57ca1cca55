package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/phmevstats/internal/aggregate"
	"github.com/gyeh/phmevstats/internal/filter"
	"github.com/gyeh/phmevstats/internal/model"
)

// servingTable is the normalized serving table populated by the load
// pipeline.
const servingTable = "phmev.records"

// recordColumns lists the serving-table columns in Record scan order.
const recordColumns = "atc1, l_atc1, atc2, l_atc2, atc3, l_atc3, atc4, l_atc4, atc5, l_atc5, " +
	"cip13, l_cip13, etablissement, categorie, ville, region, boites, rem, bse"

// PostgresSource pushes filtering down as a parameterized WHERE clause and,
// for aggregation, lets Postgres do the GROUP BY as well. This is the
// preferred path at full dataset scale.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing pool. The pool stays owned by the caller.
func NewPostgres(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Fetch scans filtered records back into memory. Reports ErrUnavailable
// when the query cannot run at all.
func (s *PostgresSource) Fetch(ctx context.Context, sel filter.Selection) ([]model.Record, error) {
	clause, err := filter.Where(sel, nil, 0)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf("SELECT %s FROM %s %s", recordColumns, servingTable, clause.SQL)
	rows, err := s.pool.Query(ctx, q, clause.Args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query records: %s", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		var r model.Record
		err := rows.Scan(
			&r.ATC[0].Code, &r.ATC[0].Label,
			&r.ATC[1].Code, &r.ATC[1].Label,
			&r.ATC[2].Code, &r.ATC[2].Label,
			&r.ATC[3].Code, &r.ATC[3].Label,
			&r.ATC[4].Code, &r.ATC[4].Label,
			&r.ProductCode, &r.ProductLabel,
			&r.Establishment, &r.Category, &r.City, &r.Region,
			&r.Boxes, &r.Reimbursed, &r.Base,
		)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read records: %s", ErrUnavailable, err)
	}
	return out, nil
}

// Close is a no-op; the pool belongs to the caller.
func (s *PostgresSource) Close() error { return nil }

// AggregateView runs the whole filter → group → sum → rank pipeline
// server-side and returns the top n rows for the measure. excludeLabels is
// applied in the WHERE when the view excludes anonymized products, so the
// exclusion policy is identical to the in-memory path.
func (s *PostgresSource) AggregateView(ctx context.Context, sel filter.Selection, v aggregate.View, excludeLabels []string, m aggregate.Measure, n int) ([]aggregate.Row, error) {
	cols, err := v.Columns()
	if err != nil {
		return nil, err
	}

	var exclude []string
	if v.ExcludeAnonymized {
		exclude = excludeLabels
	}
	clause, err := filter.Where(sel, exclude, 1) // $1 reserved for LIMIT
	if err != nil {
		return nil, err
	}

	keyList := strings.Join(cols, ", ")
	etbCount := "0"
	if v.CountEstablishments {
		etbCount = "COUNT(DISTINCT etablissement)"
	}

	q := aggregateSQL(keyList, etbCount, clause.SQL, m.Column())

	args := append([]any{n}, clause.Args...)
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate query: %s", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []aggregate.Row
	for rows.Next() {
		r := aggregate.Row{Key: make([]string, len(cols))}
		dest := make([]any, 0, len(cols)+8)
		for i := range r.Key {
			dest = append(dest, &r.Key[i])
		}
		dest = append(dest, &r.Boxes, &r.Reimbursed, &r.Base, &r.Establishments,
			&r.CostPerBox, &r.Rate, &r.PctBoxes, &r.PctReimbursed)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read aggregate rows: %s", ErrUnavailable, err)
	}
	return out, nil
}

// aggregateSQL builds the pushdown aggregation query. Derived ratios come
// from the summed columns, guarded against zero denominators;
// percent-of-total uses window sums over the filtered set. Both operands of
// the percent division are cast to numeric: rem/bse are float8 columns and
// round(v, 2) only exists for numeric.
func aggregateSQL(keyList, etbCount, whereSQL, measureCol string) string {
	return fmt.Sprintf(`SELECT %[1]s,
	SUM(boites)::bigint AS boites,
	SUM(rem)::float8 AS rem,
	SUM(bse)::float8 AS bse,
	%[2]s AS nb_etablissements,
	CASE WHEN SUM(boites) > 0 THEN SUM(rem) / SUM(boites) ELSE 0 END AS cout_par_boite,
	CASE WHEN SUM(bse) > 0 THEN SUM(rem) / SUM(bse) * 100 ELSE 0 END AS taux_remboursement,
	CASE WHEN SUM(SUM(boites)) OVER () > 0
		THEN ROUND((SUM(boites)::numeric / (SUM(SUM(boites)) OVER ())::numeric) * 100, 2)
		ELSE 0 END::float8 AS pct_boites,
	CASE WHEN SUM(SUM(rem)) OVER () > 0
		THEN ROUND((SUM(rem)::numeric / (SUM(SUM(rem)) OVER ())::numeric) * 100, 2)
		ELSE 0 END::float8 AS pct_rem
FROM %[3]s
%[4]s
GROUP BY %[1]s
ORDER BY SUM(%[5]s) DESC, %[1]s ASC
LIMIT $1`, keyList, etbCount, servingTable, whereSQL, measureCol)
}

// Options returns the distinct candidate values for one dimension, filtered
// by every other dimension's selection (the cascading behavior of the
// in-memory path, pushed down).
func (s *PostgresSource) Options(ctx context.Context, sel filter.Selection, dim string) ([]string, error) {
	d, ok := model.DimensionByName(dim)
	if !ok {
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}

	clause, err := filter.Where(sel.Without(dim), nil, 0)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf("SELECT DISTINCT %[1]s FROM %[2]s %[3]s ORDER BY %[1]s",
		d.Column, servingTable, clause.SQL)
	rows, err := s.pool.Query(ctx, q, clause.Args...)
	if err != nil {
		return nil, fmt.Errorf("%w: options query: %s", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		if v != "" {
			out = append(out, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read options: %s", ErrUnavailable, err)
	}
	return out, nil
}
