// Package export renders aggregated rows as a `;`-delimited CSV with a
// UTF-8 BOM, the layout Excel opens correctly on a French locale.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gyeh/phmevstats/internal/aggregate"
	"github.com/gyeh/phmevstats/internal/locale"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes one header line plus one line per aggregate row. Counts
// get K/M/B suffixes, amounts a trailing € symbol, ratios two decimals.
func WriteCSV(w io.Writer, v aggregate.View, rows []aggregate.Row) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := append([]string{}, v.Headers...)
	header = append(header, "Boîtes", "Montant remboursé", "Base remboursable",
		"Coût par boîte", "Taux de remboursement", "% boîtes", "% montant")
	if v.CountEstablishments {
		header = append(header, "Nb établissements")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range rows {
		r := &rows[i]
		line := append([]string{}, r.Key...)
		line = append(line,
			locale.FormatCount(r.Boxes),
			locale.FormatAmount(r.Reimbursed),
			locale.FormatAmount(r.Base),
			locale.FormatAmount(r.CostPerBox),
			locale.FormatPercent(r.Rate),
			locale.FormatPercent(r.PctBoxes),
			locale.FormatPercent(r.PctReimbursed),
		)
		if v.CountEstablishments {
			line = append(line, locale.FormatCount(r.Establishments))
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
