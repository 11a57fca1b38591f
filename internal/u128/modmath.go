package u128

import "math/big"

// Gcd returns the greatest common divisor of a and b using the Euclidean
// algorithm. Gcd(x, 0) == Gcd(0, x) == x.
//
// Parameters:
//   - a: The first operand.
//   - b: The second operand.
//
// Returns:
//   - Uint128: The greatest common divisor.
func Gcd(a, b Uint128) Uint128 {
	for !b.IsZero() {
		a, b = b, a.Mod(b)
	}
	return a
}

// MulMod returns (a * b) mod m without ever forming the full product.
// It uses binary double-and-add reduction: the accumulator and the doubled
// operand are reduced after every step, so the computation stays correct even
// when a, b and m all approach 2^128. m must be nonzero.
//
// Parameters:
//   - a: The first factor.
//   - b: The second factor.
//   - m: The modulus.
//
// Returns:
//   - Uint128: The product modulo m, in [0, m).
func MulMod(a, b, m Uint128) Uint128 {
	var res Uint128
	a = a.Mod(m)
	for !b.IsZero() {
		if b.Lo&1 == 1 {
			sum, carry := res.AddCarry(a)
			if carry != 0 || sum.Cmp(m) >= 0 {
				sum = sum.Sub(m)
			}
			res = sum
		}
		doubled, carry := a.Lsh1()
		if carry != 0 || doubled.Cmp(m) >= 0 {
			doubled = doubled.Sub(m)
		}
		a = doubled
		b = b.Rsh1()
	}
	return res
}

// AddMod returns (a + b) mod m for a, b already reduced below m.
func AddMod(a, b, m Uint128) Uint128 {
	sum, carry := a.AddCarry(b)
	if carry != 0 || sum.Cmp(m) >= 0 {
		sum = sum.Sub(m)
	}
	return sum
}

// PowMod returns base^exp mod m by binary exponentiation over MulMod.
// m must be nonzero; PowMod(x, 0, m) == 1 mod m.
//
// Parameters:
//   - base: The base.
//   - exp: The exponent.
//   - m: The modulus.
//
// Returns:
//   - Uint128: base raised to exp, modulo m.
func PowMod(base, exp, m Uint128) Uint128 {
	result := One.Mod(m)
	base = base.Mod(m)
	for !exp.IsZero() {
		if exp.Lo&1 == 1 {
			result = MulMod(result, base, m)
		}
		base = MulMod(base, base, m)
		exp = exp.Rsh1()
	}
	return result
}

// ModInverse returns the multiplicative inverse of e modulo phi using the
// extended Euclidean algorithm, normalized into [0, phi). The cofactor
// sequence is signed and can momentarily need one bit more than the operand
// width, so the iteration runs on exact big.Int intermediates.
//
// Parameters:
//   - e: The value to invert.
//   - phi: The modulus.
//
// Returns:
//   - Uint128: The inverse, when it exists.
//   - bool: false if gcd(e, phi) != 1 and no inverse exists.
func ModInverse(e, phi Uint128) (Uint128, bool) {
	if phi.IsZero() || e.IsZero() {
		return Uint128{}, false
	}
	t := new(big.Int)
	newT := big.NewInt(1)
	r := phi.Big()
	newR := e.Big()
	q := new(big.Int)

	for newR.Sign() != 0 {
		q.Quo(r, newR)
		t, newT = newT, new(big.Int).Sub(t, new(big.Int).Mul(q, newT))
		r, newR = newR, new(big.Int).Sub(r, new(big.Int).Mul(q, newR))
	}
	if r.Cmp(big.NewInt(1)) != 0 {
		return Uint128{}, false
	}
	if t.Sign() < 0 {
		t.Add(t, phi.Big())
	}
	inv, ok := FromBig(t)
	return inv, ok
}

// Pow returns base^d as an exact integer, with a flag reporting whether the
// power exceeded 128 bits. Overflow means "too large", never a wrapped value.
//
// Parameters:
//   - base: The base.
//   - d: The non-negative exponent.
//
// Returns:
//   - Uint128: The exact power when it fits.
//   - bool: true if the result fits in 128 bits.
func Pow(base Uint128, d int) (Uint128, bool) {
	res := One
	for i := 0; i < d; i++ {
		var overflow bool
		res, overflow = res.Mul(base)
		if overflow {
			return Uint128{}, false
		}
	}
	return res, true
}

// IntRoot returns the integer d-th root of n: the largest x with x^d <= n.
// The binary search treats d-th power overflow as "too large", so the result
// is exact for every n representable in 128 bits. d must be positive.
//
// Parameters:
//   - n: The radicand.
//   - d: The root degree.
//
// Returns:
//   - Uint128: The largest x such that x^d <= n.
func IntRoot(n Uint128, d int) Uint128 {
	low := One
	high := n
	ans := Zero
	for low.Cmp(high) <= 0 {
		mid := low.Add(high.Sub(low).Rsh1())
		p, fits := Pow(mid, d)
		if !fits || p.Cmp(n) > 0 {
			high = mid.Sub(One)
		} else {
			ans = mid
			low = mid.Add(One)
		}
	}
	return ans
}
