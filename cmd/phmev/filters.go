package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyeh/phmevstats/internal/filter"
	"github.com/gyeh/phmevstats/internal/ingest"
	"github.com/gyeh/phmevstats/internal/model"
	"github.com/gyeh/phmevstats/internal/source"
)

// dimFlags holds the per-dimension multi-value filter flags shared by the
// report and options commands.
type dimFlags struct {
	values   map[string]*[]string
	minBoxes int64
}

// register adds one repeatable flag per dimension plus the box threshold.
func (d *dimFlags) register(cmd *cobra.Command) {
	d.values = make(map[string]*[]string, len(model.AllDimensions))
	for _, dim := range model.AllDimensions {
		v := cmd.Flags().StringSlice(dim.Name, nil,
			fmt.Sprintf("Keep only records whose %s is in this list (repeatable)", dim.Name))
		d.values[dim.Name] = v
	}
	cmd.Flags().Int64Var(&d.minBoxes, "min-boites", 0, "Keep only records with at least this many boxes")
}

// selection materializes the flag state into a filter.Selection.
func (d *dimFlags) selection() filter.Selection {
	sel := filter.Selection{
		Values:   make(map[string][]string),
		MinBoxes: d.minBoxes,
	}
	for name, vals := range d.values {
		if vals != nil && len(*vals) > 0 {
			sel.Values[name] = *vals
		}
	}
	return sel
}

// openFileSource opens the right in-memory source for the --file flag.
func openFileSource(path string, maxRows int64) (source.Source, error) {
	format, err := ingest.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == ingest.FormatParquet {
		return source.OpenParquet(path, maxRows)
	}
	return source.OpenCSV(path, maxRows)
}
