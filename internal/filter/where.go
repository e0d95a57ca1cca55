package filter

import (
	"fmt"
	"strings"

	"github.com/gyeh/phmevstats/internal/model"
)

// Clause is a SQL WHERE fragment with bound parameters. Values never appear
// in the SQL text; establishment names with embedded quotes are just
// ordinary parameter values.
type Clause struct {
	SQL  string
	Args []any
}

// Where builds the pushdown WHERE clause for a selection. Column names come
// from the static dimension registry, selected values become `col = ANY($n)`
// bindings, the box threshold becomes `boites >= $n`. excludeLabels, when
// non-empty, appends the anonymized-product exclusion used by product and
// molecule views. argOffset is the number of placeholders already consumed
// by the enclosing query.
func Where(s Selection, excludeLabels []string, argOffset int) (Clause, error) {
	if err := s.Validate(); err != nil {
		return Clause{}, err
	}

	var conds []string
	var args []any
	next := func() int { return argOffset + len(args) + 1 }

	// Deterministic condition order: registry order, not map order.
	for _, d := range model.AllDimensions {
		vals := s.Values[d.Name]
		if len(vals) == 0 {
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = ANY($%d)", d.Column, next()))
		args = append(args, vals)
	}

	if s.MinBoxes > 0 {
		conds = append(conds, fmt.Sprintf("boites >= $%d", next()))
		args = append(args, s.MinBoxes)
	}

	if len(excludeLabels) > 0 {
		conds = append(conds, fmt.Sprintf("l_cip13 <> ALL($%d)", next()))
		args = append(args, excludeLabels)
	}

	if len(conds) == 0 {
		return Clause{}, nil
	}
	return Clause{
		SQL:  "WHERE " + strings.Join(conds, " AND "),
		Args: args,
	}, nil
}
