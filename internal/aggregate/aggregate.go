package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/gyeh/phmevstats/internal/model"
)

// Row is one aggregated group: the key values, summed measures, and the
// derived ratios computed from the sums (never averaged per record).
type Row struct {
	Key   []string
	Boxes int64

	Reimbursed float64
	Base       float64

	// Establishments is the distinct establishment count, populated only
	// when the view asks for it.
	Establishments int64

	CostPerBox float64
	Rate       float64

	// Percent of the filtered set's grand total, rounded to 2 decimals.
	PctBoxes      float64
	PctReimbursed float64
}

// Label joins the key values for display and deterministic tie-breaking.
func (r *Row) Label() string {
	return strings.Join(r.Key, " / ")
}

// keySep separates key parts in the internal group map; \x00 cannot occur
// in the data.
const keySep = "\x00"

// Aggregate groups the filtered records by the view's key and sums the
// three measures. excludeLabels is the central anonymized-product list,
// applied only when the view opts in. Zero input rows yield zero output
// rows. Every division guards its denominator.
func Aggregate(records []model.Record, v View, excludeLabels []string) ([]Row, error) {
	dims, err := v.dimensions()
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(excludeLabels))
	if v.ExcludeAnonymized {
		for _, l := range excludeLabels {
			excluded[l] = struct{}{}
		}
	}

	type bucket struct {
		row  *Row
		etbs map[string]struct{}
	}
	groups := make(map[string]*bucket)
	order := make([]string, 0)

	for i := range records {
		rec := &records[i]
		if v.ExcludeAnonymized {
			if _, drop := excluded[rec.ProductLabel]; drop {
				continue
			}
		}

		key := make([]string, len(dims))
		for j, d := range dims {
			key[j] = d.Value(rec)
		}
		mapKey := strings.Join(key, keySep)

		b, ok := groups[mapKey]
		if !ok {
			b = &bucket{row: &Row{Key: key}}
			if v.CountEstablishments {
				b.etbs = make(map[string]struct{})
			}
			groups[mapKey] = b
			order = append(order, mapKey)
		}

		b.row.Boxes += rec.Boxes
		b.row.Reimbursed += rec.Reimbursed
		b.row.Base += rec.Base
		if b.etbs != nil {
			b.etbs[rec.Establishment] = struct{}{}
		}
	}

	var totalBoxes int64
	var totalReimbursed float64
	for _, k := range order {
		totalBoxes += groups[k].row.Boxes
		totalReimbursed += groups[k].row.Reimbursed
	}

	rows := make([]Row, 0, len(order))
	for _, k := range order {
		b := groups[k]
		r := *b.row
		if b.etbs != nil {
			r.Establishments = int64(len(b.etbs))
		}
		if r.Boxes > 0 {
			r.CostPerBox = r.Reimbursed / float64(r.Boxes)
		}
		if r.Base > 0 {
			r.Rate = r.Reimbursed / r.Base * 100
		}
		if totalBoxes > 0 {
			r.PctBoxes = round2(float64(r.Boxes) / float64(totalBoxes) * 100)
		}
		if totalReimbursed > 0 {
			r.PctReimbursed = round2(r.Reimbursed / totalReimbursed * 100)
		}
		rows = append(rows, r)
	}

	// Stable output order independent of map iteration.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Label() < rows[j].Label()
	})
	return rows, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
