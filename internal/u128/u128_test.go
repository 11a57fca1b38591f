package u128

import (
	"math/big"
	"testing"
)

// maxUint128 is 2^128 - 1 in decimal, the largest representable value.
const maxUint128 = "340282366920938463463374607431768211455"

func mustParse(t *testing.T, s string) Uint128 {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return v
}

func TestParseAndString(t *testing.T) {
	t.Parallel()
	cases := []string{
		"0",
		"1",
		"2",
		"255",
		"18446744073709551615",  // max uint64
		"18446744073709551616",  // max uint64 + 1
		"815730722",             // 13^8 + 1
		"1125938964277027",      // 33478071 * 33632917
		maxUint128,
	}
	for _, s := range cases {
		v := mustParse(t, s)
		if got := v.String(); got != s {
			t.Errorf("Parse/String round trip broke: %q -> %q", s, got)
		}
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	t.Parallel()
	bad := []string{
		"",
		"-1",
		"12a3",
		" 42",
		"340282366920938463463374607431768211456", // 2^128
		"9999999999999999999999999999999999999999",
	}
	for _, s := range bad {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	cases := []struct {
		x, y Uint128
		want int
	}{
		{Zero, Zero, 0},
		{One, Zero, 1},
		{Zero, One, -1},
		{Uint128{Hi: 1}, Uint128{Lo: ^uint64(0)}, 1},
		{Uint128{Hi: 1, Lo: 5}, Uint128{Hi: 1, Lo: 5}, 0},
		{Uint128{Hi: 1, Lo: 4}, Uint128{Hi: 1, Lo: 5}, -1},
	}
	for _, tc := range cases {
		if got := tc.x.Cmp(tc.y); got != tc.want {
			t.Errorf("Cmp(%v, %v) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestAddCarryAtWidthLimit(t *testing.T) {
	t.Parallel()
	max := mustParse(t, maxUint128)

	sum, carry := max.AddCarry(One)
	if carry != 1 {
		t.Fatalf("AddCarry at 2^128-1 + 1 reported carry %d, want 1", carry)
	}
	if !sum.IsZero() {
		t.Errorf("wrapped sum = %s, want 0", sum.String())
	}

	sum, carry = max.AddCarry(Zero)
	if carry != 0 || sum.Cmp(max) != 0 {
		t.Errorf("AddCarry(max, 0) = (%s, %d), want (max, 0)", sum.String(), carry)
	}
}

func TestSubWraps(t *testing.T) {
	t.Parallel()
	got := Zero.Sub(One)
	want := mustParse(t, maxUint128)
	if got.Cmp(want) != 0 {
		t.Errorf("0 - 1 = %s, want 2^128-1", got.String())
	}
}

func TestAbsDiff(t *testing.T) {
	t.Parallel()
	a := From64(100)
	b := From64(300)
	if got := a.AbsDiff(b); got.Cmp(From64(200)) != 0 {
		t.Errorf("AbsDiff(100, 300) = %s, want 200", got.String())
	}
	if got := b.AbsDiff(a); got.Cmp(From64(200)) != 0 {
		t.Errorf("AbsDiff(300, 100) = %s, want 200", got.String())
	}
	if got := a.AbsDiff(a); !got.IsZero() {
		t.Errorf("AbsDiff(x, x) = %s, want 0", got.String())
	}
}

func TestMul64Overflow(t *testing.T) {
	t.Parallel()
	max := mustParse(t, maxUint128)
	if _, overflow := max.Mul64(2); !overflow {
		t.Error("(2^128-1) * 2 did not report overflow")
	}
	if p, overflow := From64(1 << 32).Mul64(1 << 32); overflow || p.Cmp(Uint128{Hi: 1}) != 0 {
		t.Errorf("2^32 * 2^32 = (%v, %v), want (2^64, false)", p, overflow)
	}
}

func TestMulOverflow(t *testing.T) {
	t.Parallel()
	big64 := Uint128{Hi: 1} // 2^64
	if _, overflow := big64.Mul(big64); !overflow {
		t.Error("2^64 * 2^64 did not report overflow")
	}
	p, overflow := big64.Mul(From64(3))
	if overflow || p.Cmp(Uint128{Hi: 3}) != 0 {
		t.Errorf("2^64 * 3 = (%v, %v), want (3*2^64, false)", p, overflow)
	}
}

func TestQuoRem64(t *testing.T) {
	t.Parallel()
	x := mustParse(t, "18446744073709551616") // 2^64
	q, r := x.QuoRem64(10)
	if q.String() != "1844674407370955161" || r != 6 {
		t.Errorf("2^64 / 10 = (%s, %d), want (1844674407370955161, 6)", q.String(), r)
	}
}

func TestQuoRemTwoLimbDivisor(t *testing.T) {
	t.Parallel()
	x := mustParse(t, maxUint128)
	y := mustParse(t, "18446744073709551617") // 2^64 + 1
	q, r := x.QuoRem(y)

	// Oracle through math/big.
	qb, rb := new(big.Int).QuoRem(x.Big(), y.Big(), new(big.Int))
	if q.Big().Cmp(qb) != 0 || r.Big().Cmp(rb) != 0 {
		t.Errorf("QuoRem = (%s, %s), want (%s, %s)", q.String(), r.String(), qb.String(), rb.String())
	}
}

func TestQuoRemDividendSmallerThanDivisor(t *testing.T) {
	t.Parallel()
	x := From64(7)
	y := Uint128{Hi: 1}
	q, r := x.QuoRem(y)
	if !q.IsZero() || r.Cmp(x) != 0 {
		t.Errorf("7 / 2^64 = (%s, %s), want (0, 7)", q.String(), r.String())
	}
}

func TestDivisionByZeroPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("QuoRem64 by zero did not panic")
		}
	}()
	From64(1).QuoRem64(0)
}

func TestBitLen(t *testing.T) {
	t.Parallel()
	cases := []struct {
		v    Uint128
		want int
	}{
		{Zero, 0},
		{One, 1},
		{From64(255), 8},
		{From64(256), 9},
		{Uint128{Hi: 1}, 65},
		{Uint128{Hi: 1 << 63}, 128},
	}
	for _, tc := range cases {
		if got := tc.v.BitLen(); got != tc.want {
			t.Errorf("BitLen(%v) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestLshRsh(t *testing.T) {
	t.Parallel()
	v := From64(1)
	if got := v.Lsh(64); got.Cmp(Uint128{Hi: 1}) != 0 {
		t.Errorf("1 << 64 = %v, want {Hi:1}", got)
	}
	if got := v.Lsh(128); !got.IsZero() {
		t.Errorf("1 << 128 = %v, want 0", got)
	}
	if got := (Uint128{Hi: 1}).Rsh1(); got.Cmp(From64(1<<63)) != 0 {
		t.Errorf("2^64 >> 1 = %v, want 2^63", got)
	}

	shifted, carry := (Uint128{Hi: 1 << 63}).Lsh1()
	if carry != 1 || !shifted.IsZero() {
		t.Errorf("2^127 << 1 = (%v, %d), want (0, 1)", shifted, carry)
	}
}

func TestBigRoundTrip(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"0", "1", "18446744073709551616", maxUint128} {
		v := mustParse(t, s)
		back, ok := FromBig(v.Big())
		if !ok || back.Cmp(v) != 0 {
			t.Errorf("FromBig(Big(%s)) = (%s, %v)", s, back.String(), ok)
		}
	}

	if _, ok := FromBig(big.NewInt(-1)); ok {
		t.Error("FromBig accepted a negative value")
	}
	tooBig := new(big.Int).Lsh(big.NewInt(1), 128)
	if _, ok := FromBig(tooBig); ok {
		t.Error("FromBig accepted 2^128")
	}
}
