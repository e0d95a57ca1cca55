package model

import "strings"

// Sentinel labels substituted for empty identity fields at normalization
// time, matching the gender of the French column they replace.
const (
	Unspecified  = "Non spécifié"  // etablissement, medicament
	UnspecifiedF = "Non spécifiée" // ville, categorie
)

// ATCLevel is one level of the Anatomical Therapeutic Chemical hierarchy.
type ATCLevel struct {
	Code  string
	Label string
}

// Record is one normalized PHMEV reimbursement line: a quantity of boxes of
// one product dispensed by one establishment, with the reimbursed amount and
// the reimbursable base already parsed to numeric euros.
type Record struct {
	// ATC holds the 5 hierarchy levels, index 0 = ATC1 (broadest).
	ATC [5]ATCLevel

	// ProductCode is the CIP13 identifier, one level finer than ATC5.
	ProductCode  string
	ProductLabel string

	Establishment string
	Category      string
	City          string
	Region        int32

	Boxes      int64
	Reimbursed float64
	Base       float64
}

// CostPerBox returns the per-record reimbursed cost of one box, 0 when no
// boxes were dispensed. Aggregated views must not average this value; they
// recompute it from summed numerator and denominator.
func (r *Record) CostPerBox() float64 {
	if r.Boxes <= 0 {
		return 0
	}
	return r.Reimbursed / float64(r.Boxes)
}

// ReimbursementRate returns reimbursed/base as a percentage, 0 when the
// base is 0.
func (r *Record) ReimbursementRate() float64 {
	if r.Base <= 0 {
		return 0
	}
	return r.Reimbursed / r.Base * 100
}

// HierarchyConsistent reports whether each non-empty ATC code starts with
// its parent's code. The cascading hierarchy filters rely on this holding.
func (r *Record) HierarchyConsistent() bool {
	for i := 1; i < len(r.ATC); i++ {
		child, parent := r.ATC[i].Code, r.ATC[i-1].Code
		if child == "" || parent == "" {
			continue
		}
		if !strings.HasPrefix(child, parent) {
			return false
		}
	}
	return true
}
