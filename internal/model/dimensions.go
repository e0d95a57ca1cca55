package model

// Dimension is one filterable/groupable axis of the dataset. Column is the
// serving-table column the SQL pushdown path uses; Value extracts the same
// axis from an in-memory Record. Matching follows the source behavior:
// ATC levels filter by label, not code.
type Dimension struct {
	Name   string
	Column string
	Value  func(*Record) string
}

// AllDimensions lists the supported dimensions in canonical order.
var AllDimensions = []Dimension{
	{Name: "atc1", Column: "l_atc1", Value: func(r *Record) string { return r.ATC[0].Label }},
	{Name: "atc2", Column: "l_atc2", Value: func(r *Record) string { return r.ATC[1].Label }},
	{Name: "atc3", Column: "l_atc3", Value: func(r *Record) string { return r.ATC[2].Label }},
	{Name: "atc4", Column: "l_atc4", Value: func(r *Record) string { return r.ATC[3].Label }},
	{Name: "atc5", Column: "l_atc5", Value: func(r *Record) string { return r.ATC[4].Label }},
	{Name: "produit", Column: "l_cip13", Value: func(r *Record) string { return r.ProductLabel }},
	{Name: "etablissement", Column: "etablissement", Value: func(r *Record) string { return r.Establishment }},
	{Name: "ville", Column: "ville", Value: func(r *Record) string { return r.City }},
	{Name: "categorie", Column: "categorie", Value: func(r *Record) string { return r.Category }},
}

// DimensionNames returns just the names of all dimensions.
func DimensionNames() []string {
	names := make([]string, len(AllDimensions))
	for i, d := range AllDimensions {
		names[i] = d.Name
	}
	return names
}

// DimensionByName returns the Dimension for the given name, or ok=false.
func DimensionByName(name string) (Dimension, bool) {
	for _, d := range AllDimensions {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}
