package source

import (
	"fmt"
	"io"

	"github.com/gyeh/phmevstats/internal/model"
	"github.com/gyeh/phmevstats/internal/normalize"
	"github.com/gyeh/phmevstats/internal/parquetread"
)

// ParquetSource loads a prepared PHMEV Parquet file into memory and filters
// locally.
type ParquetSource struct {
	memorySource
	path string
}

// OpenParquet streams the Parquet file through normalization. maxRows > 0
// caps the number of rows loaded.
func OpenParquet(path string, maxRows int64) (*ParquetSource, error) {
	reader, err := parquetread.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("validate parquet %s: %w", path, err)
	}

	src := &ParquetSource{path: path}
	buf := make([]model.ParquetRecord, readBatchSize)
	var loaded int64

	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			if maxRows > 0 && loaded >= maxRows {
				return src, nil
			}
			src.records = append(src.records, *normalize.FromParquet(&buf[i]))
			loaded++
		}
		if readErr == io.EOF {
			return src, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("load parquet %s: %w", path, readErr)
		}
	}
}

// Close is a no-op; the file is released after load.
func (s *ParquetSource) Close() error { return nil }
