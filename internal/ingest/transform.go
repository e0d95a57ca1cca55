package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/phmevstats/internal/sql"
)

// TransformResult holds metrics from the staging → serving insert.
type TransformResult struct {
	RowsInserted int64
	Duration     time.Duration
}

// Transform moves the staged batch into phmev.records. On a forced reload
// the file's previous serving rows are dropped first so the load stays
// idempotent per file.
func Transform(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID, fileID int64, replace bool) (*TransformResult, error) {
	start := time.Now()

	if replace {
		tag, err := pool.Exec(ctx, embedsql.DeleteServingForFile, fileID)
		if err != nil {
			return nil, fmt.Errorf("delete previous serving rows: %w", err)
		}
		log.Info().Int64("rows_deleted", tag.RowsAffected()).Msg("previous serving rows dropped")
	}

	tag, err := pool.Exec(ctx, embedsql.TransformStageToServing, batchID)
	if err != nil {
		return nil, fmt.Errorf("transform stage to serving: %w", err)
	}

	dur := time.Since(start)
	rows := tag.RowsAffected()

	log.Info().
		Int64("rows_inserted", rows).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(rows)/dur.Seconds()).
		Msg("transform complete")

	return &TransformResult{
		RowsInserted: rows,
		Duration:     dur,
	}, nil
}

// Finalize marks the file loaded and refreshes planner statistics.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, fileID int64) (time.Duration, error) {
	start := time.Now()

	if err := UpdateStatus(ctx, pool, fileID, "loaded"); err != nil {
		return 0, fmt.Errorf("update status to loaded: %w", err)
	}

	if _, err := pool.Exec(ctx, embedsql.AnalyzeRecords); err != nil {
		return 0, fmt.Errorf("analyze records: %w", err)
	}
	log.Info().Msg("ANALYZE complete")

	return time.Since(start), nil
}
