package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/phmevstats/internal/normalize"
	embedsql "github.com/gyeh/phmevstats/internal/sql"
)

// Format of the file being loaded.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// DetectFormat infers the file format from its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	}
	return "", fmt.Errorf("cannot detect format of %q, want .csv or .parquet", path)
}

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	FilePath   string
	Format     Format
	FileSHA256 string
	FileSize   int64
	// SourceFileID is the DB primary key for this file, inserted or looked
	// up via its sha256.
	SourceFileID int64
	// IngestBatchID is a freshly generated UUIDv4 identifying this load
	// run, used to tag staged rows for transform/cleanup.
	IngestBatchID uuid.UUID
	// AlreadyLoaded is true when the file's sha256 already exists with
	// status "loaded" and force mode is off.
	AlreadyLoaded bool
}

// Preflight hashes the file, detects its format, and registers it in
// ingest.source_files.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	format, err := DetectFormat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight format: %w", err)
	}

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	var fileID int64
	var status string
	err = pool.QueryRow(ctx, embedsql.RegisterSourceFile,
		filepath.Base(filePath), sha, stat.Size(),
	).Scan(&fileID, &status)
	if err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("format", string(format)).
		Str("sha256", sha).
		Str("status", status).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return &PreflightResult{
		FilePath:      filePath,
		Format:        format,
		FileSHA256:    sha,
		FileSize:      stat.Size(),
		SourceFileID:  fileID,
		IngestBatchID: uuid.New(),
		AlreadyLoaded: status == "loaded" && !force,
	}, nil
}

// UpdateStatus updates the source file status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, fileID int64, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateFileStatus, fileID, status)
	return err
}
