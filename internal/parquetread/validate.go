package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// requiredColumns must all be present for the PHMEV pipeline to run; labels
// and identity columns are optional because anonymized exports drop them.
var requiredColumns = []string{"atc1", "cip13", "BOITES", "REM", "BSE"}

// ValidateSchema checks that the Parquet schema carries the PHMEV measure
// and hierarchy columns.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[field.Name()] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
