package aggregate

import (
	"fmt"
	"sort"
)

// Measure selects which summed column orders a top-N ranking.
type Measure string

const (
	ByBoxes      Measure = "boites"
	ByReimbursed Measure = "rem"
)

// MeasureByName validates a user-supplied sort measure.
func MeasureByName(name string) (Measure, error) {
	switch Measure(name) {
	case ByBoxes, ByReimbursed:
		return Measure(name), nil
	}
	return "", fmt.Errorf("unknown sort measure %q, want %q or %q", name, ByBoxes, ByReimbursed)
}

// value returns the row's value for the measure.
func (m Measure) value(r *Row) float64 {
	if m == ByReimbursed {
		return r.Reimbursed
	}
	return float64(r.Boxes)
}

// Column returns the serving-table aggregate expression for the measure,
// for the SQL pushdown ORDER BY.
func (m Measure) Column() string {
	if m == ByReimbursed {
		return "rem"
	}
	return "boites"
}

// TopN returns the n rows with the largest value of the measure in
// descending order. Ties break on the ascending group label so repeated
// calls and growing n are reproducible: TopN(rows, m, n) is always a prefix
// of TopN(rows, m, n+k). Fewer than n groups returns all of them.
func TopN(rows []Row, m Measure, n int) []Row {
	if n < 0 {
		n = 0
	}
	out := make([]Row, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := m.value(&out[i]), m.value(&out[j])
		if vi != vj {
			return vi > vj
		}
		return out[i].Label() < out[j].Label()
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}
