package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/phmevstats/internal/csvread"
	"github.com/gyeh/phmevstats/internal/db"
	"github.com/gyeh/phmevstats/internal/model"
	"github.com/gyeh/phmevstats/internal/normalize"
	"github.com/gyeh/phmevstats/internal/parquetread"
)

const readBatchSize = 1024

// StageResult holds metrics from the staging phase.
type StageResult struct {
	RowsRead   int64
	RowsStaged int64
	Duration   time.Duration
}

// Stage streams rows from the source file, normalizes them, and COPY-loads
// them into ingest.stage_records via a channel-backed CopyFromSource.
// maxRows > 0 caps the number of rows staged.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, maxRows int64) (*StageResult, error) {
	start := time.Now()

	ch := make(chan *model.StagingRecord, readBatchSize)
	errCh := make(chan error, 1)

	var rowsRead int64

	// Producer goroutine: read file → normalize → push to channel.
	go func() {
		defer close(ch)

		produce := func(rec *model.Record) bool {
			rowsRead++
			staging := model.FromRecord(rec, pf.IngestBatchID, pf.SourceFileID, rowsRead)
			select {
			case ch <- staging:
				return true
			case <-ctx.Done():
				errCh <- ctx.Err()
				return false
			}
		}

		switch pf.Format {
		case FormatCSV:
			errCh <- stageCSV(pf.FilePath, maxRows, produce)
		case FormatParquet:
			errCh <- stageParquet(pf.FilePath, maxRows, produce)
		default:
			errCh <- fmt.Errorf("unsupported format %q", pf.Format)
		}
	}()

	// Consumer: COPY from channel into the staging table.
	srcCh := db.NewChannelSource(ch)
	rowsStaged, copyErr := pool.CopyFrom(ctx,
		pgx.Identifier{"ingest", "stage_records"},
		model.StagingColumns(),
		srcCh,
	)

	// Wait for producer to finish.
	if prodErr := <-errCh; prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}
	if copyErr != nil {
		return nil, fmt.Errorf("stage copy: %w", copyErr)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_read", rowsRead).
		Int64("rows_staged", rowsStaged).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(rowsStaged)/dur.Seconds()).
		Msg("staging complete")

	return &StageResult{
		RowsRead:   rowsRead,
		RowsStaged: rowsStaged,
		Duration:   dur,
	}, nil
}

func stageCSV(path string, maxRows int64, produce func(*model.Record) bool) error {
	reader, err := csvread.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	buf := make([]model.RawRecord, readBatchSize)
	var produced int64
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			if maxRows > 0 && produced >= maxRows {
				return nil
			}
			if !produce(normalize.FromCSV(&buf[i])) {
				return nil
			}
			produced++
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read csv at row %d: %w", produced, readErr)
		}
	}
}

func stageParquet(path string, maxRows int64, produce func(*model.Record) bool) error {
	reader, err := parquetread.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return err
	}

	buf := make([]model.ParquetRecord, readBatchSize)
	var produced int64
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			if maxRows > 0 && produced >= maxRows {
				return nil
			}
			if !produce(normalize.FromParquet(&buf[i])) {
				return nil
			}
			produced++
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read parquet at row %d: %w", produced, readErr)
		}
	}
}
