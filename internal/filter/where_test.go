package filter

import (
	"strings"
	"testing"
)

func TestWhere_Empty(t *testing.T) {
	clause, err := Where(Selection{}, nil, 0)
	if err != nil {
		t.Fatalf("Where: %v", err)
	}
	if clause.SQL != "" || len(clause.Args) != 0 {
		t.Errorf("empty selection produced %q with %d args", clause.SQL, len(clause.Args))
	}
}

func TestWhere_BindsValuesAsParameters(t *testing.T) {
	// Establishment names with embedded quotes broke the original string
	// concatenation; as bound parameters they are plain values.
	hostile := "HOPITAL D'INSTRUCTION DES ARMEES ('HIA')"
	sel := Selection{
		Values: map[string][]string{
			"etablissement": {hostile},
			"ville":         {"Lyon", "Paris"},
		},
		MinBoxes: 5,
	}
	clause, err := Where(sel, nil, 0)
	if err != nil {
		t.Fatalf("Where: %v", err)
	}

	if strings.Contains(clause.SQL, "HIA") || strings.Contains(clause.SQL, "Lyon") {
		t.Errorf("selected values leaked into SQL text: %q", clause.SQL)
	}
	if !strings.HasPrefix(clause.SQL, "WHERE ") {
		t.Errorf("clause %q does not start with WHERE", clause.SQL)
	}
	for _, want := range []string{"etablissement = ANY($1)", "ville = ANY($2)", "boites >= $3"} {
		if !strings.Contains(clause.SQL, want) {
			t.Errorf("clause %q missing %q", clause.SQL, want)
		}
	}
	if len(clause.Args) != 3 {
		t.Fatalf("got %d args, want 3", len(clause.Args))
	}
	etbs, ok := clause.Args[0].([]string)
	if !ok || etbs[0] != hostile {
		t.Errorf("arg 0 = %#v, want the raw establishment list", clause.Args[0])
	}
}

func TestWhere_DeterministicConditionOrder(t *testing.T) {
	sel := Selection{Values: map[string][]string{
		"ville": {"Lyon"},
		"atc1":  {"ANTINEOPLASIQUES"},
	}}
	first, err := Where(sel, nil, 0)
	if err != nil {
		t.Fatalf("Where: %v", err)
	}
	// Registry order puts atc1 before ville regardless of map iteration.
	if !strings.Contains(first.SQL, "l_atc1 = ANY($1) AND ville = ANY($2)") {
		t.Errorf("conditions out of registry order: %q", first.SQL)
	}
	for i := 0; i < 10; i++ {
		again, _ := Where(sel, nil, 0)
		if again.SQL != first.SQL {
			t.Fatalf("clause not deterministic: %q vs %q", again.SQL, first.SQL)
		}
	}
}

func TestWhere_ExclusionLabels(t *testing.T) {
	exclude := []string{"Non restitué", "Non spécifié"}
	clause, err := Where(Selection{}, exclude, 0)
	if err != nil {
		t.Fatalf("Where: %v", err)
	}
	if !strings.Contains(clause.SQL, "l_cip13 <> ALL($1)") {
		t.Errorf("clause %q missing exclusion condition", clause.SQL)
	}
	if strings.Contains(clause.SQL, "Non restitué") {
		t.Errorf("exclusion labels leaked into SQL text: %q", clause.SQL)
	}
}

func TestWhere_ArgOffset(t *testing.T) {
	sel := Selection{Values: map[string][]string{"ville": {"Lyon"}}, MinBoxes: 1}
	clause, err := Where(sel, nil, 1)
	if err != nil {
		t.Fatalf("Where: %v", err)
	}
	if !strings.Contains(clause.SQL, "ville = ANY($2)") || !strings.Contains(clause.SQL, "boites >= $3") {
		t.Errorf("offset placeholders wrong: %q", clause.SQL)
	}
}

func TestWhere_InvalidSelection(t *testing.T) {
	if _, err := Where(Selection{Values: map[string][]string{"bogus": {"x"}}}, nil, 0); err == nil {
		t.Error("unknown dimension should error")
	}
}
