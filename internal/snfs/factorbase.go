package snfs

import (
	"math/big"

	"github.com/agbru/snfscalc/internal/sieve"
)

// FactorBase is the ordered, append-only sequence of distinct primes the
// smoothness test divides by. It starts as all primes <= bound and grows by
// exactly one column whenever a large prime is accepted. Growth never
// reindexes existing relations: their exponent vectors were sized to the
// factor-base size at record time and later columns are implicitly zero.
type FactorBase struct {
	primes []uint32
	index  map[uint32]int
}

// NewFactorBase builds the initial base of all primes <= bound, truncated at
// the MaxFactorBase capacity.
//
// Parameters:
//   - bound: The sieve bound B (>= 2; callers validate via Params).
//
// Returns:
//   - *FactorBase: The initial base.
func NewFactorBase(bound int) *FactorBase {
	primes := sieve.Primes(bound)
	if len(primes) > MaxFactorBase {
		primes = primes[:MaxFactorBase]
	}
	fb := &FactorBase{
		primes: primes,
		index:  make(map[uint32]int, len(primes)),
	}
	for i, p := range primes {
		fb.index[p] = i
	}
	return fb
}

// Size returns the current number of columns.
func (fb *FactorBase) Size() int {
	return len(fb.primes)
}

// Prime returns the prime at column i.
func (fb *FactorBase) Prime(i int) uint32 {
	return fb.primes[i]
}

// Column returns the column index of p and whether p is in the base.
func (fb *FactorBase) Column(p uint32) (int, bool) {
	i, ok := fb.index[p]
	return i, ok
}

// addLargePrime appends p as a new column, or returns the existing column if
// p is already in the base (the same large prime accepted across different
// relations must reuse its column, never duplicate it).
//
// Parameters:
//   - p: The accepted large prime.
//
// Returns:
//   - int: The column index of p.
//   - bool: false if the base is at capacity and p is not already present.
func (fb *FactorBase) addLargePrime(p uint32) (int, bool) {
	if i, ok := fb.index[p]; ok {
		return i, true
	}
	if len(fb.primes) >= MaxFactorBase {
		return 0, false
	}
	fb.primes = append(fb.primes, p)
	fb.index[p] = len(fb.primes) - 1
	return len(fb.primes) - 1, true
}

// smoothFactor attempts to factor value completely over the base plus one
// large-prime slot. On success it returns the exponent vector, sized to the
// base as it stands after any large-prime growth; per-column counters are
// clamped at MaxExponent. On failure (value is not smooth) it returns ok ==
// false and the base is left unchanged.
//
// Parameters:
//   - value: The exact polynomial value f(a); consumed as scratch.
//
// Returns:
//   - []uint8: The exponent vector, one counter per column.
//   - bool: true if value factored completely.
func (fb *FactorBase) smoothFactor(value *big.Int) ([]uint8, bool) {
	exps := make([]uint8, len(fb.primes))
	q := new(big.Int)
	r := new(big.Int)
	p := new(big.Int)
	for i := range fb.primes {
		p.SetUint64(uint64(fb.primes[i]))
		for {
			q.QuoRem(value, p, r)
			if r.Sign() != 0 {
				break
			}
			value.Set(q)
			if exps[i] < MaxExponent {
				exps[i]++
			}
		}
	}
	if value.Cmp(bigOne) == 0 {
		return exps, true
	}

	// Single large-prime slot: one leftover prime slightly above the sieve
	// bound still counts as smooth and earns its own column.
	if !value.IsUint64() {
		return nil, false
	}
	leftover := value.Uint64()
	if leftover > LargePrimeBound || !sieve.IsPrime64(leftover) {
		return nil, false
	}
	col, ok := fb.addLargePrime(uint32(leftover))
	if !ok {
		return nil, false
	}
	if col < len(exps) {
		// Known column: reuse it instead of appending a duplicate.
		if exps[col] < MaxExponent {
			exps[col]++
		}
		return exps, true
	}
	exps = append(exps, 1)
	return exps, true
}

var bigOne = big.NewInt(1)
