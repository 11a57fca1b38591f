// Package sieve provides prime generation for the factor base and the
// deterministic primality check used by the large-prime slot.
package sieve

// Primes returns all primes p <= bound in increasing order using a boolean
// sieve of Eratosthenes over bound+1 cells. A bound below 2 yields an empty
// slice. The function is deterministic and has no side effects beyond the
// sieve allocation.
//
// Parameters:
//   - bound: The inclusive upper bound for generated primes.
//
// Returns:
//   - []uint32: The primes up to bound, smallest first.
func Primes(bound int) []uint32 {
	if bound < 2 {
		return nil
	}
	composite := make([]bool, bound+1)
	for p := 2; p*p <= bound; p++ {
		if composite[p] {
			continue
		}
		for j := p * p; j <= bound; j += p {
			composite[j] = true
		}
	}
	primes := make([]uint32, 0, bound/2)
	for i := 2; i <= bound; i++ {
		if !composite[i] {
			primes = append(primes, uint32(i))
		}
	}
	return primes
}

// IsPrime64 reports whether x is prime using deterministic trial division.
// It is intended for the large-prime candidates of the relation collector,
// which are bounded well below the point where trial division hurts.
//
// Parameters:
//   - x: The candidate.
//
// Returns:
//   - bool: true if x is prime.
func IsPrime64(x uint64) bool {
	if x < 2 {
		return false
	}
	if x%2 == 0 {
		return x == 2
	}
	for i := uint64(3); i*i <= x; i += 2 {
		if x%i == 0 {
			return false
		}
	}
	return true
}
