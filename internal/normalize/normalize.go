package normalize

import (
	"strconv"
	"strings"

	"github.com/gyeh/phmevstats/internal/locale"
	"github.com/gyeh/phmevstats/internal/model"
)

// FromCSV converts one raw CSV line into a normalized Record: French-locale
// amounts parsed (unparseable -> 0), identity fields filled with their
// "Non spécifié(e)" sentinels so grouping keys are always defined.
func FromCSV(raw *model.RawRecord) *model.Record {
	r := &model.Record{
		ATC: [5]model.ATCLevel{
			{Code: clean(raw.ATC1), Label: clean(raw.LATC1)},
			{Code: clean(raw.ATC2), Label: clean(raw.LATC2)},
			{Code: clean(raw.ATC3), Label: clean(raw.LATC3)},
			{Code: clean(raw.ATC4), Label: clean(raw.LATC4)},
			{Code: clean(raw.ATC5), Label: clean(raw.LATC5)},
		},
		ProductCode:  clean(raw.CIP13),
		ProductLabel: fallback(clean(raw.LCIP13), model.Unspecified),

		Establishment: fallback(clean(raw.NomEtb), clean(raw.RaisonSocialeEtb), model.Unspecified),
		Category:      fallback(clean(raw.CategorieJur), model.UnspecifiedF),
		City:          fallback(clean(raw.NomVille), model.UnspecifiedF),
		Region:        parseRegion(raw.Region),

		Boxes:      locale.ParseBoxes(raw.Boites),
		Reimbursed: locale.ParseAmount(raw.Rem),
		Base:       locale.ParseAmount(raw.Bse),
	}
	return r
}

// FromParquet converts a Parquet row, whose numeric columns were already
// converted at dataset preparation time, into a normalized Record.
func FromParquet(row *model.ParquetRecord) *model.Record {
	boxes := row.Boites
	if boxes < 0 {
		boxes = 0
	}
	r := &model.Record{
		ATC: [5]model.ATCLevel{
			{Code: clean(row.ATC1), Label: derefClean(row.LATC1)},
			{Code: clean(row.ATC2), Label: derefClean(row.LATC2)},
			{Code: clean(row.ATC3), Label: derefClean(row.LATC3)},
			{Code: clean(row.ATC4), Label: derefClean(row.LATC4)},
			{Code: clean(row.ATC5), Label: derefClean(row.LATC5)},
		},
		ProductCode:  clean(row.CIP13),
		ProductLabel: fallback(derefClean(row.LCIP13), model.Unspecified),

		Establishment: fallback(derefClean(row.NomEtb), derefClean(row.RaisonSocialeEtb), model.Unspecified),
		Category:      fallback(derefClean(row.CategorieJur), model.UnspecifiedF),
		City:          fallback(derefClean(row.NomVille), model.UnspecifiedF),

		Boxes:      boxes,
		Reimbursed: sanitize(row.Rem),
		Base:       sanitize(row.Bse),
	}
	if row.Region != nil {
		r.Region = *row.Region
	}
	return r
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

func derefClean(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// fallback returns the first non-empty candidate. The last candidate is the
// sentinel and is assumed non-empty.
func fallback(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// parseRegion parses a numeric region code. Unlike the amount columns the
// region arrives as "93" or, from float-typed exports, "93.0", so the dot
// is a decimal point here.
func parseRegion(s string) int32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int32(f)
	}
	return 0
}

// sanitize guards against NaN/Inf and negatives leaking from a prepared
// Parquet file into sums.
func sanitize(v float64) float64 {
	if v != v || v < 0 || v > 1e15 {
		return 0
	}
	return v
}
