// Package gf2 implements the incremental GF(2) linear-algebra engine of the
// sieve pipeline: a bit matrix that reduces each incoming parity row against
// its stored pivot rows and reports a linear dependency the instant one
// appears, without ever batch-reducing the full relation set.
package gf2

import (
	"fmt"
	"math/bits"
)

// Row is a GF(2) bit vector packed into 64-bit words.
type Row []uint64

// NewRow creates a zeroed Row wide enough for the given number of columns.
//
// Parameters:
//   - columns: The number of bits the row must hold.
//
// Returns:
//   - Row: A zeroed bit vector.
func NewRow(columns int) Row {
	return make(Row, (columns+63)/64)
}

// Set sets bit i.
func (r Row) Set(i int) {
	r[i/64] |= uint64(1) << (i % 64)
}

// Test reports whether bit i is set.
func (r Row) Test(i int) bool {
	return r[i/64]&(uint64(1)<<(i%64)) != 0
}

// Xor folds other into r in place. Both rows must have equal width.
func (r Row) Xor(other Row) {
	for i := range r {
		r[i] ^= other[i]
	}
}

// IsZero reports whether every bit of r is clear.
func (r Row) IsZero() bool {
	for _, w := range r {
		if w != 0 {
			return false
		}
	}
	return true
}

// FirstSet returns the index of the lowest set bit, or -1 if the row is zero.
func (r Row) FirstSet() int {
	for w, word := range r {
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

// Clone returns an independent copy of r.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// Dependency is a bitmask over relation indices whose parity rows XOR to the
// zero vector. It is transient: the resolver consumes it immediately.
type Dependency = Row

// Matrix is the incremental reducer state: an ordered set of pivot rows, the
// column index of each pivot, and, per pivot, the combination mask recording
// which original relation indices were XORed together to produce it.
//
// Invariants: pivot columns are strictly distinct across rows, and the XOR of
// the original rows named by a pivot's combination mask equals the stored
// pivot row. The number of pivot rows can never exceed the column count,
// since every insertion consumes a previously unused column.
type Matrix struct {
	columns  int
	maxRows  int
	rows     []Row
	combos   []Row
	pivotCol []int
}

// NewMatrix creates an empty reducer for the given column width.
//
// Parameters:
//   - columns: The number of parity columns (factor-base capacity).
//   - maxRows: The hard cap on stored pivot rows; reaching it is a capacity
//     failure surfaced by Insert, never undefined behavior.
//
// Returns:
//   - *Matrix: The empty matrix.
func NewMatrix(columns, maxRows int) *Matrix {
	if maxRows > columns {
		maxRows = columns
	}
	return &Matrix{columns: columns, maxRows: maxRows}
}

// Rows returns the number of pivot rows currently stored.
func (m *Matrix) Rows() int {
	return len(m.rows)
}

// Columns returns the column width of the matrix.
func (m *Matrix) Columns() int {
	return m.columns
}

// Insert reduces row against the stored pivots in insertion order and either
// detects a dependency or records a new pivot.
//
// The incoming row and combo are consumed: Insert mutates them during forward
// elimination and, on pivot insertion, retains them.
//
// Parameters:
//   - row: The parity bit vector of the new relation, width == Columns().
//   - combo: The combination mask for the row, initially just the relation's
//     own index bit.
//
// Returns:
//   - Dependency: The accumulated combination mask if the row reduced to
//     zero, which is exactly the set of relation indices whose parity rows
//     XOR to the zero vector, or nil when a new pivot was stored instead.
//   - error: A capacity error if the pivot store is full.
func (m *Matrix) Insert(row Row, combo Row) (Dependency, error) {
	for i, pivot := range m.rows {
		if row.Test(m.pivotCol[i]) {
			row.Xor(pivot)
			combo.Xor(m.combos[i])
		}
	}
	if row.IsZero() {
		return combo, nil
	}
	if len(m.rows) >= m.maxRows {
		return nil, fmt.Errorf("gf2: pivot capacity %d exhausted", m.maxRows)
	}
	pc := row.FirstSet()
	m.rows = append(m.rows, row)
	m.combos = append(m.combos, combo)
	m.pivotCol = append(m.pivotCol, pc)
	return nil, nil
}
