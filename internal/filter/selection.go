package filter

import (
	"fmt"

	"github.com/gyeh/phmevstats/internal/model"
)

// Selection is the user's filter state: selected values per dimension plus
// a minimum box-count threshold. An absent or empty value list leaves that
// dimension unconstrained; all constrained dimensions combine with AND.
type Selection struct {
	Values   map[string][]string
	MinBoxes int64
}

// Validate checks that every constrained dimension name is known.
func (s Selection) Validate() error {
	for name := range s.Values {
		if _, ok := model.DimensionByName(name); !ok {
			return fmt.Errorf("unknown filter dimension %q", name)
		}
	}
	if s.MinBoxes < 0 {
		return fmt.Errorf("min boxes must be >= 0, got %d", s.MinBoxes)
	}
	return nil
}

// Active reports whether the selection constrains anything at all.
func (s Selection) Active() bool {
	if s.MinBoxes > 0 {
		return true
	}
	for _, vals := range s.Values {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}

// Without returns a copy of the selection with one dimension released.
// Used to compute cascading candidate options for that dimension.
func (s Selection) Without(dim string) Selection {
	out := Selection{MinBoxes: s.MinBoxes, Values: make(map[string][]string, len(s.Values))}
	for name, vals := range s.Values {
		if name == dim {
			continue
		}
		out.Values[name] = vals
	}
	return out
}

// Matches reports whether the record passes every active constraint.
func (s Selection) Matches(r *model.Record) bool {
	if r.Boxes < s.MinBoxes {
		return false
	}
	for name, vals := range s.Values {
		if len(vals) == 0 {
			continue
		}
		dim, ok := model.DimensionByName(name)
		if !ok {
			return false
		}
		if !contains(vals, dim.Value(r)) {
			return false
		}
	}
	return true
}

// Apply filters records down to those matching the selection. The input is
// never mutated; an empty result is a valid outcome, not an error.
func Apply(records []model.Record, s Selection) []model.Record {
	if !s.Active() {
		return records
	}
	out := make([]model.Record, 0, len(records))
	for i := range records {
		if s.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func contains(vals []string, v string) bool {
	for _, c := range vals {
		if c == v {
			return true
		}
	}
	return false
}
