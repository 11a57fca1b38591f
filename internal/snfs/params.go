// Package snfs implements a toy Special Number Field Sieve for composites of
// the special form n ≈ m^degree + 1. It collects relations that are smooth
// over a bounded factor base (with a single large-prime slot), feeds their
// exponent-parity vectors to an incremental GF(2) reducer, and turns the
// first usable dependency into a congruence of squares exposing a factor.
//
// This is deliberately a bounded educational sieve, not a real NFS: there is
// no polynomial selection, no two-dimensional sieving, and the rational side
// of the congruence is fixed at 1, so the search is one-sided.
package snfs

import (
	apperrors "github.com/agbru/snfscalc/internal/errors"
)

// Static capacities of the pipeline. Exceeding any of them stops the search
// with a "no factor found" result; they are contracts, never crash points.
const (
	// MaxFactorBase caps the number of factor-base columns, counting primes
	// appended by the large-prime slot.
	MaxFactorBase = 6000
	// MaxRelations caps the number of recorded relations.
	MaxRelations = 12000
	// LargePrimeBound is the acceptance ceiling for the single large prime a
	// smoothness test may keep beyond the sieved base.
	LargePrimeBound = 100_000_000
	// MaxExponent clamps each per-prime exponent counter. Exponents above the
	// clamp are recorded as exactly MaxExponent: an accepted approximation of
	// the true exponent, not a smoothness failure.
	MaxExponent = 250
	// RelationOvershoot is how many relations past the factor-base size the
	// collector gathers before giving up on forcing a dependency.
	RelationOvershoot = 16
	// MinDegree and MaxDegree bound the supported polynomial degrees.
	MinDegree = 3
	MaxDegree = 12
	// MaxFactorBaseBound caps the sieve bound so the boolean sieve allocation
	// stays small.
	MaxFactorBaseBound = 1_000_000
	// MaxSearchWindow caps the 1-D search window for k.
	MaxSearchWindow = 10_000_000
)

// Params holds the tunable inputs of one sieve run.
type Params struct {
	// Degree is the exponent d of the algebraic polynomial f(a) = a^d + 1.
	Degree int
	// FactorBaseBound is the sieve bound B; the base holds all primes <= B.
	FactorBaseBound int
	// SearchWindow is the number of offsets k = 1..K to try.
	SearchWindow int
}

// Validate checks the semantic consistency of the parameters.
//
// Returns:
//   - error: A ConfigError describing the first violated constraint, or nil.
func (p Params) Validate() error {
	if p.Degree < MinDegree || p.Degree > MaxDegree {
		return apperrors.NewConfigError("degree must be between %d and %d, got %d", MinDegree, MaxDegree, p.Degree)
	}
	if p.FactorBaseBound < 2 {
		return apperrors.NewConfigError("factor base bound must be at least 2, got %d", p.FactorBaseBound)
	}
	if p.FactorBaseBound > MaxFactorBaseBound {
		return apperrors.NewConfigError("factor base bound %d exceeds maximum %d", p.FactorBaseBound, MaxFactorBaseBound)
	}
	if p.SearchWindow < 0 {
		return apperrors.NewConfigError("search window must not be negative, got %d", p.SearchWindow)
	}
	if p.SearchWindow > MaxSearchWindow {
		return apperrors.NewConfigError("search window %d exceeds maximum %d", p.SearchWindow, MaxSearchWindow)
	}
	return nil
}

// Stats reports what one sieve run did, independent of whether it succeeded.
type Stats struct {
	// Candidates is the number of offsets whose polynomial value was tested
	// for smoothness.
	Candidates int
	// Relations is the number of smooth relations recorded.
	Relations int
	// Dependencies is the number of linear dependencies the reducer surfaced.
	Dependencies int
	// TrivialDependencies counts dependencies that yielded gcd 1 or n and
	// were discarded.
	TrivialDependencies int
	// FactorBaseSize is the final column count, including large primes.
	FactorBaseSize int
}
