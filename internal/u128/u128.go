// Package u128 implements the unsigned 128-bit integer type underlying all
// modular arithmetic in snfscalc, together with the modular kernel built on
// top of it (Gcd, MulMod, PowMod, ModInverse, IntRoot).
//
// The type is a plain two-limb value (Hi, Lo) manipulated with math/bits
// carry primitives. 128 bits is the width contract of the whole pipeline: it
// holds any supported modulus n, and the double-and-add reduction strategy in
// MulMod guarantees that products never silently wrap even when the operands
// approach the width limit.
package u128

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer composed of two 64-bit limbs.
// The zero value is the number zero and is ready to use.
type Uint128 struct {
	// Hi holds the most significant 64 bits.
	Hi uint64
	// Lo holds the least significant 64 bits.
	Lo uint64
}

// Zero is the Uint128 zero value, provided for readability at call sites.
var Zero = Uint128{}

// One is the Uint128 representation of 1.
var One = Uint128{Lo: 1}

// From64 converts a uint64 to a Uint128.
//
// Parameters:
//   - v: The value to widen.
//
// Returns:
//   - Uint128: The widened value.
func From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether x is zero.
func (x Uint128) IsZero() bool {
	return x.Hi == 0 && x.Lo == 0
}

// IsUint64 reports whether x fits in a uint64.
func (x Uint128) IsUint64() bool {
	return x.Hi == 0
}

// Uint64 returns the low 64 bits of x. Callers should check IsUint64 first
// when truncation would be a bug.
func (x Uint128) Uint64() uint64 {
	return x.Lo
}

// Cmp compares x and y and returns -1, 0, or +1.
//
// Parameters:
//   - y: The value to compare against.
//
// Returns:
//   - int: -1 if x < y, 0 if x == y, +1 if x > y.
func (x Uint128) Cmp(y Uint128) int {
	switch {
	case x.Hi < y.Hi:
		return -1
	case x.Hi > y.Hi:
		return 1
	case x.Lo < y.Lo:
		return -1
	case x.Lo > y.Lo:
		return 1
	default:
		return 0
	}
}

// Add returns x + y, wrapping on overflow. Use AddCarry when the carry-out
// matters (it does in every modular step).
func (x Uint128) Add(y Uint128) Uint128 {
	sum, _ := x.AddCarry(y)
	return sum
}

// AddCarry returns x + y along with the carry out of the high limb (0 or 1).
//
// Parameters:
//   - y: The addend.
//
// Returns:
//   - Uint128: The 128-bit sum (wrapped).
//   - uint64: The carry out of bit 127.
func (x Uint128) AddCarry(y Uint128) (Uint128, uint64) {
	lo, c := bits.Add64(x.Lo, y.Lo, 0)
	hi, c := bits.Add64(x.Hi, y.Hi, c)
	return Uint128{Hi: hi, Lo: lo}, c
}

// Sub returns x - y, wrapping modulo 2^128 when y > x.
func (x Uint128) Sub(y Uint128) Uint128 {
	lo, b := bits.Sub64(x.Lo, y.Lo, 0)
	hi, _ := bits.Sub64(x.Hi, y.Hi, b)
	return Uint128{Hi: hi, Lo: lo}
}

// AbsDiff returns |x - y|.
func (x Uint128) AbsDiff(y Uint128) Uint128 {
	if x.Cmp(y) >= 0 {
		return x.Sub(y)
	}
	return y.Sub(x)
}

// Lsh1 returns x << 1 along with the bit shifted out of the top.
func (x Uint128) Lsh1() (Uint128, uint64) {
	carry := x.Hi >> 63
	return Uint128{Hi: x.Hi<<1 | x.Lo>>63, Lo: x.Lo << 1}, carry
}

// Rsh1 returns x >> 1.
func (x Uint128) Rsh1() Uint128 {
	return Uint128{Hi: x.Hi >> 1, Lo: x.Lo>>1 | x.Hi<<63}
}

// Lsh returns x << n, wrapping bits shifted past bit 127.
func (x Uint128) Lsh(n uint) Uint128 {
	switch {
	case n == 0:
		return x
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: x.Lo << (n - 64)}
	default:
		return Uint128{Hi: x.Hi<<n | x.Lo>>(64-n), Lo: x.Lo << n}
	}
}

// BitLen returns the number of bits required to represent x; 0 for x == 0.
func (x Uint128) BitLen() int {
	if x.Hi != 0 {
		return 64 + bits.Len64(x.Hi)
	}
	return bits.Len64(x.Lo)
}

// Mul64 returns x * y and a flag reporting whether the true product
// exceeded 128 bits.
//
// Parameters:
//   - y: The 64-bit multiplier.
//
// Returns:
//   - Uint128: The low 128 bits of the product.
//   - bool: true if the product overflowed 128 bits.
func (x Uint128) Mul64(y uint64) (Uint128, bool) {
	hiLo, lo := bits.Mul64(x.Lo, y)
	hiHi, hiProd := bits.Mul64(x.Hi, y)
	hi, carry := bits.Add64(hiLo, hiProd, 0)
	return Uint128{Hi: hi, Lo: lo}, hiHi != 0 || carry != 0
}

// Mul returns x * y and a flag reporting whether the true product exceeded
// 128 bits. MulMod should be used for modular products; Mul exists for exact
// integer powers where overflow must be detected, not reduced.
func (x Uint128) Mul(y Uint128) (Uint128, bool) {
	if x.Hi != 0 && y.Hi != 0 {
		return Uint128{}, true
	}
	c1, m1 := bits.Mul64(x.Hi, y.Lo)
	c2, m2 := bits.Mul64(x.Lo, y.Hi)
	hiLo, lo := bits.Mul64(x.Lo, y.Lo)
	hi, carry := bits.Add64(hiLo, m1, 0)
	overflow := c1 != 0 || c2 != 0 || carry != 0
	hi, carry = bits.Add64(hi, m2, 0)
	overflow = overflow || carry != 0
	return Uint128{Hi: hi, Lo: lo}, overflow
}

// QuoRem64 returns the quotient and remainder of x divided by d.
// It panics if d is zero, mirroring native integer division.
//
// Parameters:
//   - d: The 64-bit divisor.
//
// Returns:
//   - Uint128: The quotient.
//   - uint64: The remainder.
func (x Uint128) QuoRem64(d uint64) (Uint128, uint64) {
	if d == 0 {
		panic("u128: division by zero")
	}
	qHi := x.Hi / d
	rHi := x.Hi % d
	qLo, r := bits.Div64(rHi, x.Lo, d)
	return Uint128{Hi: qHi, Lo: qLo}, r
}

// QuoRem returns the quotient and remainder of x divided by y.
// It panics if y is zero. Division by a single-limb divisor delegates to the
// hardware path in QuoRem64; the general case runs a shift-subtract loop over
// at most BitLen(x)-BitLen(y)+1 iterations.
//
// Parameters:
//   - y: The divisor.
//
// Returns:
//   - Uint128: The quotient.
//   - Uint128: The remainder.
func (x Uint128) QuoRem(y Uint128) (Uint128, Uint128) {
	if y.IsZero() {
		panic("u128: division by zero")
	}
	if y.Hi == 0 {
		q, r := x.QuoRem64(y.Lo)
		return q, Uint128{Lo: r}
	}
	if x.Cmp(y) < 0 {
		return Uint128{}, x
	}
	// y.Hi != 0 here, so the quotient fits in 64 bits and the shift is < 64.
	shift := uint(x.BitLen() - y.BitLen())
	t := y.Lsh(shift)
	var q Uint128
	r := x
	for {
		if r.Cmp(t) >= 0 {
			r = r.Sub(t)
			q = q.Add(One.Lsh(shift))
		}
		if shift == 0 {
			break
		}
		shift--
		t = t.Rsh1()
	}
	return q, r
}

// Mod returns x mod y.
func (x Uint128) Mod(y Uint128) Uint128 {
	_, r := x.QuoRem(y)
	return r
}

// String renders x in decimal.
func (x Uint128) String() string {
	if x.IsZero() {
		return "0"
	}
	var buf [40]byte
	i := len(buf)
	for !x.IsZero() {
		var r uint64
		x, r = x.QuoRem64(10)
		i--
		buf[i] = byte('0' + r)
	}
	return string(buf[i:])
}

// Parse converts a decimal string to a Uint128.
//
// Parameters:
//   - s: The decimal representation, digits only.
//
// Returns:
//   - Uint128: The parsed value.
//   - error: An error if s is empty, contains a non-digit, or overflows 128 bits.
func Parse(s string) (Uint128, error) {
	if s == "" {
		return Uint128{}, fmt.Errorf("u128: empty input")
	}
	var v Uint128
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Uint128{}, fmt.Errorf("u128: invalid digit %q in %q", c, s)
		}
		shifted, overflow := v.Mul64(10)
		if overflow {
			return Uint128{}, fmt.Errorf("u128: value %q overflows 128 bits", s)
		}
		var carry uint64
		v, carry = shifted.AddCarry(From64(uint64(c - '0')))
		if carry != 0 {
			return Uint128{}, fmt.Errorf("u128: value %q overflows 128 bits", s)
		}
	}
	return v, nil
}

// FromBig converts a big.Int to a Uint128.
//
// Parameters:
//   - b: The value to convert.
//
// Returns:
//   - Uint128: The converted value.
//   - bool: true if b is non-negative and fits in 128 bits.
func FromBig(b *big.Int) (Uint128, bool) {
	if b.Sign() < 0 || b.BitLen() > 128 {
		return Uint128{}, false
	}
	var lo, hi big.Int
	hi.Rsh(b, 64)
	lo.And(b, new(big.Int).SetUint64(^uint64(0)))
	return Uint128{Hi: hi.Uint64(), Lo: lo.Uint64()}, true
}

// Big converts x to a big.Int.
func (x Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(x.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(x.Lo))
}
