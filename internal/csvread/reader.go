// Package csvread streams raw records from the `;`-delimited, Latin-1
// encoded OPEN_PHMEV CSV export.
package csvread

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/gyeh/phmevstats/internal/model"
)

// Reader streams RawRecords from a PHMEV CSV file.
type Reader struct {
	file *os.File
	csv  *csv.Reader
	// cols maps RawRecord column names to their index in the file header.
	cols map[string]int
}

// Open opens the CSV file, decodes its Latin-1 header, and validates that
// every expected column is present.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}

	cr := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, want := range model.CSVColumns {
		if _, ok := cols[want]; !ok {
			f.Close()
			return nil, fmt.Errorf("csv header missing column %q", want)
		}
	}

	return &Reader{file: f, csv: cr, cols: cols}, nil
}

// Read reads up to len(rows) records into the provided slice.
// Returns the number of rows read and io.EOF when done.
func (r *Reader) Read(rows []model.RawRecord) (int, error) {
	for i := range rows {
		fields, err := r.csv.Read()
		if err == io.EOF {
			return i, io.EOF
		}
		if err != nil {
			return i, fmt.Errorf("read csv row: %w", err)
		}
		rows[i] = r.toRaw(fields)
	}
	return len(rows), nil
}

func (r *Reader) field(fields []string, name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}

func (r *Reader) toRaw(fields []string) model.RawRecord {
	return model.RawRecord{
		ATC1:  r.field(fields, "atc1"),
		LATC1: r.field(fields, "l_atc1"),
		ATC2:  r.field(fields, "atc2"),
		LATC2: r.field(fields, "l_atc2"),
		ATC3:  r.field(fields, "atc3"),
		LATC3: r.field(fields, "l_atc3"),
		ATC4:  r.field(fields, "atc4"),
		LATC4: r.field(fields, "l_atc4"),
		ATC5:  r.field(fields, "atc5"),
		LATC5: r.field(fields, "l_atc5"),

		CIP13:  r.field(fields, "cip13"),
		LCIP13: r.field(fields, "l_cip13"),

		NomEtb:           r.field(fields, "nom_etb"),
		RaisonSocialeEtb: r.field(fields, "raison_sociale_etb"),
		CategorieJur:     r.field(fields, "categorie_jur"),
		NomVille:         r.field(fields, "nom_ville"),
		Region:           r.field(fields, "region"),

		Boites: r.field(fields, "BOITES"),
		Rem:    r.field(fields, "REM"),
		Bse:    r.field(fields, "BSE"),
	}
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
