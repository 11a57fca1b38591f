package snfs

import (
	"context"
	"math/big"

	"github.com/rs/zerolog/log"

	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/gf2"
	"github.com/agbru/snfscalc/internal/u128"
)

// ProgressFunc receives the fraction of the search window consumed so far,
// in [0, 1]. A nil ProgressFunc disables reporting.
type ProgressFunc func(fraction float64)

// ctxCheckInterval is how many offsets are processed between context checks.
const ctxCheckInterval = 256

// Factor runs the full sieve pipeline on n: factor base generation, relation
// collection over the search window, incremental GF(2) reduction, and
// dependency resolution. It returns the first nontrivial divisor exposed by a
// congruence of squares.
//
// The run is sequential and deterministic: identical inputs collect identical
// relations in identical order and return the identical factor. Every
// capacity bound (factor base, relation count, window) ends the search with
// apperrors.ErrNoFactorFound rather than failing.
//
// Parameters:
//   - ctx: The context; checked between candidate batches.
//   - n: The composite to factor, expected odd and > 3.
//   - params: Degree, factor-base bound and search window; validated first.
//   - report: Optional progress callback.
//
// Returns:
//   - u128.Uint128: A nontrivial proper divisor of n, when found.
//   - Stats: Counters describing the run.
//   - error: A ConfigError for invalid params, ctx.Err() on cancellation, or
//     apperrors.ErrNoFactorFound on exhaustion.
func Factor(ctx context.Context, n u128.Uint128, params Params, report ProgressFunc) (u128.Uint128, Stats, error) {
	var stats Stats
	if err := params.Validate(); err != nil {
		return u128.Zero, stats, err
	}
	if report == nil {
		report = func(float64) {}
	}

	fb := NewFactorBase(params.FactorBaseBound)
	matrix := gf2.NewMatrix(MaxFactorBase, MaxFactorBase)
	relations := make([]Relation, 0, fb.Size()+RelationOvershoot)

	// m approximates the d-th root of n; for exact n = m^d + 1 the root of
	// n-1 recovers m itself.
	radicand := n
	if n.Cmp(u128.One) > 0 {
		radicand = n.Sub(u128.One)
	}
	m := u128.IntRoot(radicand, params.Degree)

	target := fb.Size() + RelationOvershoot

	for k := 1; k <= params.SearchWindow; k++ {
		if len(relations) >= MaxRelations || len(relations) >= target {
			break
		}
		if k%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				stats.FactorBaseSize = fb.Size()
				return u128.Zero, stats, err
			}
			report(float64(k) / float64(params.SearchWindow))
		}

		a := m.Add(u128.From64(uint64(k)))
		value := polynomialValue(a, params.Degree)
		stats.Candidates++

		exps, smooth := fb.smoothFactor(value)
		if !smooth {
			continue
		}
		rel := Relation{Offset: k, Exponents: exps}

		combo := gf2.NewRow(MaxRelations)
		combo.Set(len(relations))
		relations = append(relations, rel)
		stats.Relations++

		dep, err := matrix.Insert(rel.parityRow(), combo)
		if err != nil {
			// Pivot capacity exhausted; the bounded search is over.
			break
		}
		if dep == nil {
			continue
		}

		stats.Dependencies++
		factor, ok := resolveDependency(dep, relations, fb, n)
		if ok {
			stats.FactorBaseSize = fb.Size()
			log.Debug().
				Int("offset", k).
				Int("relations", stats.Relations).
				Int("dependencies", stats.Dependencies).
				Str("factor", factor.String()).
				Msg("congruence of squares yielded a factor")
			return factor, stats, nil
		}
		stats.TrivialDependencies++
		log.Debug().
			Int("offset", k).
			Int("relations", stats.Relations).
			Msg("trivial dependency discarded")
	}

	stats.FactorBaseSize = fb.Size()
	report(1.0)
	return u128.Zero, stats, apperrors.ErrNoFactorFound
}

// polynomialValue evaluates f(a) = a^degree + 1 exactly. The value routinely
// needs more than 128 bits once k pushes a above the d-th root of n, so the
// evaluation runs on big.Int.
func polynomialValue(a u128.Uint128, degree int) *big.Int {
	v := a.Big()
	v.Exp(v, big.NewInt(int64(degree)), nil)
	return v.Add(v, bigOne)
}

// resolveDependency turns a dependency bitmask into a congruence of squares.
// It sums the exponent vectors of all referenced relations (plain integer
// addition; totals are even by construction of the parity matrix), computes
// x as the product of the half-exponent prime powers mod n, pairs it against
// the fixed rational side y = 1, and tests gcd(|x-y|, n) then
// gcd((x+y) mod n, n). A result strictly between 1 and n is a factor; both
// tests degenerating to 1 or n means the congruence was trivial (x ≡ ±y) and
// carries no information.
func resolveDependency(dep gf2.Dependency, relations []Relation, fb *FactorBase, n u128.Uint128) (u128.Uint128, bool) {
	totals := make([]uint32, fb.Size())
	for idx := range relations {
		if !dep.Test(idx) {
			continue
		}
		for j, e := range relations[idx].Exponents {
			totals[j] += uint32(e)
		}
	}

	x := u128.One.Mod(n)
	y := u128.One.Mod(n) // rational side fixed at 1 in this toy
	for j, total := range totals {
		if total == 0 {
			continue
		}
		p := u128.From64(uint64(fb.Prime(j)))
		half := u128.From64(uint64(total / 2))
		x = u128.MulMod(x, u128.PowMod(p, half, n), n)
	}

	if g := u128.Gcd(x.AbsDiff(y), n); g.Cmp(u128.One) > 0 && g.Cmp(n) < 0 {
		return g, true
	}
	if g := u128.Gcd(u128.AddMod(x, y, n), n); g.Cmp(u128.One) > 0 && g.Cmp(n) < 0 {
		return g, true
	}
	return u128.Zero, false
}
