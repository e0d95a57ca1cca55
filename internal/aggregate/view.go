package aggregate

import (
	"fmt"

	"github.com/gyeh/phmevstats/internal/model"
)

// View is a named grouping of the filtered record set. ExcludeAnonymized
// makes the anonymized-product policy explicit per view: product and
// molecule analyses drop placeholder labels, establishment totals keep
// them.
type View struct {
	Name string
	// GroupBy lists dimension names forming the group key, in output order.
	GroupBy []string
	// Headers are the display names for the group key columns.
	Headers []string
	// ExcludeAnonymized drops records whose product label is a configured
	// placeholder before grouping.
	ExcludeAnonymized bool
	// CountEstablishments adds a distinct-establishment column per group.
	CountEstablishments bool
}

// AllViews lists the built-in analysis views.
var AllViews = []View{
	{
		Name:    "etablissements",
		GroupBy: []string{"etablissement", "ville", "categorie"},
		Headers: []string{"Établissement", "Ville", "Catégorie"},
	},
	{
		Name:                "produits",
		GroupBy:             []string{"produit", "atc1"},
		Headers:             []string{"Produit", "Classe ATC1"},
		ExcludeAnonymized:   true,
		CountEstablishments: true,
	},
	{
		Name:                "molecules",
		GroupBy:             []string{"atc5", "atc1"},
		Headers:             []string{"Molécule", "Classe ATC1"},
		ExcludeAnonymized:   true,
		CountEstablishments: true,
	},
	{
		Name:    "villes",
		GroupBy: []string{"ville"},
		Headers: []string{"Ville"},
	},
}

// ViewByName returns the named view, or an error listing the valid names.
func ViewByName(name string) (View, error) {
	for _, v := range AllViews {
		if v.Name == name {
			return v, nil
		}
	}
	names := make([]string, len(AllViews))
	for i, v := range AllViews {
		names[i] = v.Name
	}
	return View{}, fmt.Errorf("unknown view %q, want one of %v", name, names)
}

// dimensions resolves the view's group dimensions from the registry.
func (v View) dimensions() ([]model.Dimension, error) {
	dims := make([]model.Dimension, len(v.GroupBy))
	for i, name := range v.GroupBy {
		d, ok := model.DimensionByName(name)
		if !ok {
			return nil, fmt.Errorf("view %s: unknown dimension %q", v.Name, name)
		}
		dims[i] = d
	}
	return dims, nil
}

// Columns returns the serving-table columns for the group key, used by the
// SQL pushdown path.
func (v View) Columns() ([]string, error) {
	dims, err := v.dimensions()
	if err != nil {
		return nil, err
	}
	cols := make([]string, len(dims))
	for i, d := range dims {
		cols[i] = d.Column
	}
	return cols, nil
}
