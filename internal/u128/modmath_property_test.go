package u128

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestModularArithmetic_PropertyBased checks the two-limb modular primitives
// against math/big as an independent oracle. Each property draws random 64-bit
// operands, widens them into 128-bit values by squaring or combining, and
// verifies that the hand-rolled arithmetic agrees with big.Int exactly.
func TestModularArithmetic_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("MulMod matches big.Int for wide operands", prop.ForAll(
		func(a, b, m uint64) bool {
			if m < 2 {
				m = 2
			}
			// Widen the operands past 64 bits so the reduction path that
			// handles carries actually runs.
			wa := Uint128{Hi: a, Lo: b}
			wb := Uint128{Hi: b, Lo: a}
			wm := Uint128{Hi: m >> 32, Lo: m}

			got := MulMod(wa, wb, wm)

			want := new(big.Int).Mul(wa.Big(), wb.Big())
			want.Mod(want, wm.Big())
			return got.Big().Cmp(want) == 0
		},
		gen.UInt64Range(2, ^uint64(0)),
		gen.UInt64Range(0, ^uint64(0)),
		gen.UInt64Range(2, ^uint64(0)),
	))

	properties.Property("PowMod matches big.Int Exp", prop.ForAll(
		func(base, exp, m uint64) bool {
			if m < 2 {
				m = 2
			}
			got := PowMod(From64(base), From64(exp), From64(m))

			want := new(big.Int).Exp(
				new(big.Int).SetUint64(base),
				new(big.Int).SetUint64(exp),
				new(big.Int).SetUint64(m),
			)
			return got.Big().Cmp(want) == 0
		},
		gen.UInt64Range(0, ^uint64(0)),
		gen.UInt64Range(0, 1<<20),
		gen.UInt64Range(2, ^uint64(0)),
	))

	properties.Property("QuoRem reconstructs the dividend", prop.ForAll(
		func(xHi, xLo, yHi, yLo uint64) bool {
			x := Uint128{Hi: xHi, Lo: xLo}
			y := Uint128{Hi: yHi, Lo: yLo}
			if y.IsZero() {
				y = One
			}
			q, r := x.QuoRem(y)
			if r.Cmp(y) >= 0 {
				return false
			}
			// q*y + r == x, checked exactly through big.Int.
			back := new(big.Int).Mul(q.Big(), y.Big())
			back.Add(back, r.Big())
			return back.Cmp(x.Big()) == 0
		},
		gen.UInt64Range(0, ^uint64(0)),
		gen.UInt64Range(0, ^uint64(0)),
		gen.UInt64Range(0, ^uint64(0)),
		gen.UInt64Range(0, ^uint64(0)),
	))

	properties.Property("Gcd matches big.Int GCD", prop.ForAll(
		func(a, b uint64) bool {
			got := Gcd(From64(a), From64(b))
			want := new(big.Int).GCD(nil, nil,
				new(big.Int).SetUint64(a),
				new(big.Int).SetUint64(b),
			)
			return got.Big().Cmp(want) == 0
		},
		gen.UInt64Range(0, ^uint64(0)),
		gen.UInt64Range(0, ^uint64(0)),
	))

	properties.Property("IntRoot returns the largest root", prop.ForAll(
		func(n uint64, d int) bool {
			root := IntRoot(From64(n), d)
			p, fits := Pow(root, d)
			if !fits || p.Cmp(From64(n)) > 0 {
				return false
			}
			next, fits := Pow(root.Add(One), d)
			return !fits || next.Cmp(From64(n)) > 0
		},
		gen.UInt64Range(1, ^uint64(0)),
		gen.IntRange(2, 12),
	))

	properties.Property("ModInverse round trips through MulMod", prop.ForAll(
		func(e, phi uint64) bool {
			if phi < 2 {
				phi = 2
			}
			inv, ok := ModInverse(From64(e), From64(phi))
			g := Gcd(From64(e), From64(phi))
			if g.Cmp(One) != 0 {
				// No inverse can exist when e and phi share a factor.
				return !ok
			}
			if !ok {
				return false
			}
			return MulMod(From64(e), inv, From64(phi)).Cmp(One.Mod(From64(phi))) == 0
		},
		gen.UInt64Range(1, ^uint64(0)),
		gen.UInt64Range(2, ^uint64(0)),
	))

	properties.TestingRun(t)
}

func TestModInverseKnownValues(t *testing.T) {
	t.Parallel()
	// 7 * 8743 = 61201 = 6 * 10200 + 1
	inv, ok := ModInverse(From64(7), From64(10200))
	if !ok || inv.Cmp(From64(8743)) != 0 {
		t.Errorf("ModInverse(7, 10200) = (%s, %v), want (8743, true)", inv.String(), ok)
	}

	if _, ok := ModInverse(From64(4), From64(10200)); ok {
		t.Error("ModInverse(4, 10200) reported an inverse for a non-coprime pair")
	}
	if _, ok := ModInverse(Zero, From64(5)); ok {
		t.Error("ModInverse(0, 5) reported an inverse")
	}
}

func TestPowExactOverflow(t *testing.T) {
	t.Parallel()
	if p, fits := Pow(From64(13), 8); !fits || p.Cmp(From64(815730721)) != 0 {
		t.Errorf("13^8 = (%s, %v), want (815730721, true)", p.String(), fits)
	}
	if _, fits := Pow(From64(2), 128); fits {
		t.Error("2^128 reported as fitting in 128 bits")
	}
	if p, fits := Pow(From64(2), 127); !fits || p.Cmp(Uint128{Hi: 1 << 63}) != 0 {
		t.Errorf("2^127 = (%v, %v), want ({Hi:1<<63}, true)", p, fits)
	}
}

func TestIntRootEdges(t *testing.T) {
	t.Parallel()
	cases := []struct {
		n    uint64
		d    int
		want uint64
	}{
		{0, 3, 0},
		{1, 3, 1},
		{7, 3, 1},
		{8, 3, 2},
		{815730721, 8, 13}, // exact 8th power
		{815730722, 8, 13}, // one above the exact power
		{815730720, 8, 12},
	}
	for _, tc := range cases {
		if got := IntRoot(From64(tc.n), tc.d); got.Cmp(From64(tc.want)) != 0 {
			t.Errorf("IntRoot(%d, %d) = %s, want %d", tc.n, tc.d, got.String(), tc.want)
		}
	}
}
