package filter

import (
	"fmt"
	"sort"

	"github.com/gyeh/phmevstats/internal/model"
)

// Options computes the candidate values a UI should offer for dimension dim
// given the current selection: the distinct values of dim over the records
// passing every OTHER dimension's filter. Releasing dim itself keeps an
// already-picked value visible and makes the filters mutually narrowing.
func Options(records []model.Record, s Selection, dim string) ([]string, error) {
	d, ok := model.DimensionByName(dim)
	if !ok {
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}

	rest := s.Without(dim)
	seen := make(map[string]struct{})
	for i := range records {
		if !rest.Matches(&records[i]) {
			continue
		}
		v := d.Value(&records[i])
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}
