package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/gyeh/phmevstats/internal/filter"
	"github.com/gyeh/phmevstats/internal/model"
)

func writeFixture(t *testing.T, rows []string) string {
	t.Helper()
	lines := append([]string{strings.Join(model.CSVColumns, ";")}, rows...)
	encoded, err := charmap.ISO8859_1.NewEncoder().String(strings.Join(lines, "\n") + "\n")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "phmev.csv")
	if err := os.WriteFile(path, []byte(encoded), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func fixtureRows() []string {
	return []string{
		"L;CYTOSTATIQUES;;;;;;;;;3400890000000;CABOMETYX 20MG;CHU A;;CHR;PARIS;11;10;100,00;120,00",
		"L;CYTOSTATIQUES;;;;;;;;;3400890000001;DOLIPRANE 1000MG;CHU A;;CHR;PARIS;11;5;50,00;60,00",
		"N;ANALGÉSIQUES;;;;;;;;;3400890000001;DOLIPRANE 1000MG;CHU B;;CH;LYON;84;20;300,00;300,00",
	}
}

func TestOpenCSV_FetchAll(t *testing.T) {
	src, err := OpenCSV(writeFixture(t, fixtureRows()), 0)
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}
	defer src.Close()

	records, err := src.Fetch(context.Background(), filter.Selection{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Reimbursed != 100 || records[2].Boxes != 20 {
		t.Errorf("normalization wrong: %+v", records)
	}
	if records[0].ATC[0].Label != "CYTOSTATIQUES" {
		t.Errorf("ATC1 label = %q", records[0].ATC[0].Label)
	}
}

func TestOpenCSV_FetchFiltered(t *testing.T) {
	src, err := OpenCSV(writeFixture(t, fixtureRows()), 0)
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}
	defer src.Close()

	records, err := src.Fetch(context.Background(), filter.Selection{
		Values:   map[string][]string{"ville": {"LYON"}},
		MinBoxes: 10,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 1 || records[0].Establishment != "CHU B" {
		t.Errorf("filtered fetch = %+v, want only CHU B", records)
	}
}

func TestOpenCSV_EmptyResultIsValid(t *testing.T) {
	src, err := OpenCSV(writeFixture(t, fixtureRows()), 0)
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}
	defer src.Close()

	records, err := src.Fetch(context.Background(), filter.Selection{
		Values: map[string][]string{"ville": {"MARSEILLE"}},
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestOpenCSV_MaxRows(t *testing.T) {
	src, err := OpenCSV(writeFixture(t, fixtureRows()), 2)
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}
	defer src.Close()

	records, err := src.Fetch(context.Background(), filter.Selection{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2 (capped)", len(records))
	}
}

func TestOpenCSV_MissingFileIsUnavailable(t *testing.T) {
	_, err := OpenCSV("/nonexistent/phmev.csv", 0)
	if err == nil {
		t.Fatal("missing file should fail")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error %v does not wrap ErrUnavailable", err)
	}
}

func TestOpenCSV_UnknownFilterDimension(t *testing.T) {
	src, err := OpenCSV(writeFixture(t, fixtureRows()), 0)
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}
	defer src.Close()

	_, err = src.Fetch(context.Background(), filter.Selection{
		Values: map[string][]string{"bogus": {"x"}},
	})
	if err == nil {
		t.Error("unknown dimension should fail Fetch")
	}
}
