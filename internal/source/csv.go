package source

import (
	"fmt"
	"io"

	"github.com/gyeh/phmevstats/internal/csvread"
	"github.com/gyeh/phmevstats/internal/model"
	"github.com/gyeh/phmevstats/internal/normalize"
)

const readBatchSize = 1024

// CSVSource loads a PHMEV CSV file fully into memory once and filters
// locally, the strategy suited to the sampled dataset.
type CSVSource struct {
	memorySource
	path string
}

// OpenCSV reads and normalizes the whole file. maxRows > 0 caps the number
// of rows loaded, mirroring the sampled-dataset path.
func OpenCSV(path string, maxRows int64) (*CSVSource, error) {
	reader, err := csvread.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer reader.Close()

	src := &CSVSource{path: path}
	buf := make([]model.RawRecord, readBatchSize)
	var loaded int64

	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			if maxRows > 0 && loaded >= maxRows {
				return src, nil
			}
			src.records = append(src.records, *normalize.FromCSV(&buf[i]))
			loaded++
		}
		if readErr == io.EOF {
			return src, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("load csv %s: %w", path, readErr)
		}
	}
}

// Close is a no-op; the file is released after load.
func (s *CSVSource) Close() error { return nil }
