// Package source abstracts where PHMEV records come from. The filter and
// aggregation core never knows whether rows were read from a flat file or
// pushed down to Postgres.
package source

import (
	"context"
	"errors"

	"github.com/gyeh/phmevstats/internal/filter"
	"github.com/gyeh/phmevstats/internal/model"
)

// ErrUnavailable marks a source that could not be reached at all (missing
// file, failed connection). Callers must surface it distinctly and never
// fall back to partial or fabricated data.
var ErrUnavailable = errors.New("record source unavailable")

// Source yields normalized records matching a selection.
type Source interface {
	// Fetch returns all records passing the selection. An empty result is
	// valid; errors wrapping ErrUnavailable mean the source itself failed.
	Fetch(ctx context.Context, sel filter.Selection) ([]model.Record, error)
	Close() error
}

// memorySource serves fetches from a dataset loaded once into memory; the
// CSV and Parquet sources embed it. Records are read-only after load, so
// reuse across fetches needs no locking.
type memorySource struct {
	records []model.Record
}

func (m *memorySource) Fetch(_ context.Context, sel filter.Selection) ([]model.Record, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return filter.Apply(m.records, sel), nil
}

// Records exposes the full loaded dataset for cascading option computation.
func (m *memorySource) Records() []model.Record {
	return m.records
}
