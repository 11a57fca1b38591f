package snfs

import (
	"github.com/agbru/snfscalc/internal/gf2"
)

// Relation records one successful smoothness outcome: the search offset k
// (with a = m + k) and the exponent vector of f(a) over the factor base as it
// stood when the relation was recorded. Relations are immutable once stored
// and are referenced by index everywhere else in the pipeline.
type Relation struct {
	// Offset is k, with the algebraic value taken at a = m + k.
	Offset int
	// Exponents holds one clamped counter per factor-base column.
	Exponents []uint8
}

// parityRow derives the GF(2) parity row of a relation: one bit per
// factor-base column, set iff the exponent for that column is odd. The row is
// sized to the full column capacity so that columns appended later line up
// without reindexing.
func (rel Relation) parityRow() gf2.Row {
	row := gf2.NewRow(MaxFactorBase)
	for i, e := range rel.Exponents {
		if e%2 == 1 {
			row.Set(i)
		}
	}
	return row
}
