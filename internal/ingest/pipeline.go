package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/phmevstats/internal/config"
	"github.com/gyeh/phmevstats/internal/model"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full load pipeline: preflight → stage → transform →
// finalize → cleanup.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.LoadSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.FilePath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("source_file_id", pf.SourceFileID).
			Str("sha256", pf.FileSHA256).
			Msg("file already loaded, skipping (use --force to reload)")
		return &model.LoadSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			SourceFileID:  pf.SourceFileID,
			IngestBatchID: pf.IngestBatchID.String(),
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	// Phase 2: Stage
	log.Info().Msg("starting staging")
	if err := UpdateStatus(ctx, pool, pf.SourceFileID, "staging"); err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	stageResult, err := Stage(ctx, pool, log, pf, cfg.MaxRows)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.SourceFileID, "failed")
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	// Phase 3: Transform
	log.Info().Msg("starting transform")
	if err := UpdateStatus(ctx, pool, pf.SourceFileID, "transforming"); err != nil {
		return nil, &PipelineError{Phase: "transform", Err: err}
	}

	transformResult, err := Transform(ctx, pool, log, pf.IngestBatchID, pf.SourceFileID, cfg.Force)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.SourceFileID, "failed")
		return nil, &PipelineError{Phase: "transform", Err: err}
	}

	// Phase 4: Finalize
	log.Info().Msg("finalizing")
	finalizeDur, err := Finalize(ctx, pool, log, pf.SourceFileID)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.SourceFileID, "failed")
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	// Phase 5: Cleanup staging
	if !cfg.KeepStaging {
		log.Info().Msg("cleaning up staging")
		if err := Cleanup(ctx, pool, log, pf.IngestBatchID); err != nil {
			log.Warn().Err(err).Msg("staging cleanup failed (non-fatal)")
		}
	}

	summary := &model.LoadSummary{
		FilePath:          pf.FilePath,
		FileSHA256:        pf.FileSHA256,
		SourceFileID:      pf.SourceFileID,
		IngestBatchID:     pf.IngestBatchID.String(),
		RowsRead:          stageResult.RowsRead,
		RowsStaged:        stageResult.RowsStaged,
		RowsInserted:      transformResult.RowsInserted,
		DurationStage:     stageResult.Duration,
		DurationTransform: transformResult.Duration,
		DurationFinalize:  finalizeDur,
		DurationTotal:     time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_staged", summary.RowsStaged).
		Int64("rows_serving", summary.RowsInserted).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("load pipeline complete")

	return summary, nil
}
