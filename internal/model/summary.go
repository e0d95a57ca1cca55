package model

import "time"

// LoadSummary captures metrics from a single file load run.
type LoadSummary struct {
	FilePath          string
	FileSHA256        string
	SourceFileID      int64
	IngestBatchID     string
	RowsRead          int64
	RowsStaged        int64
	RowsInserted      int64
	DurationStage     time.Duration
	DurationTransform time.Duration
	DurationFinalize  time.Duration
	DurationTotal     time.Duration
}
