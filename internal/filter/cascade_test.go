package filter

import (
	"reflect"
	"testing"
)

func TestOptions_Unfiltered(t *testing.T) {
	got, err := Options(testRecords(), Selection{}, "ville")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	want := []string{"Lyon", "Paris"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Options(ville) = %v, want %v", got, want)
	}
}

func TestOptions_NarrowedByOtherDimension(t *testing.T) {
	sel := Selection{Values: map[string][]string{"produit": {"CABOMETYX 20MG"}}}
	got, err := Options(testRecords(), sel, "etablissement")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	want := []string{"CHU A", "CHU C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Options(etablissement | produit=CABOMETYX) = %v, want %v", got, want)
	}
}

// The queried dimension's own filter must not narrow its option set,
// otherwise a picked value would hide its siblings.
func TestOptions_ReleasesOwnDimension(t *testing.T) {
	sel := Selection{Values: map[string][]string{"ville": {"Lyon"}}}
	got, err := Options(testRecords(), sel, "ville")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	want := []string{"Lyon", "Paris"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Options(ville | ville=Lyon) = %v, want %v", got, want)
	}
}

func TestOptions_UnknownDimension(t *testing.T) {
	if _, err := Options(testRecords(), Selection{}, "bogus"); err == nil {
		t.Error("unknown dimension should error")
	}
}

func TestOptions_EmptyRecords(t *testing.T) {
	got, err := Options(nil, Selection{}, "ville")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Options over no records = %v, want empty", got)
	}
}
