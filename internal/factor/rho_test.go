package factor

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/u128"
)

func TestRhoFactorsSemiprimes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		n    uint64
	}{
		{"Classic8051", 8051},             // 83 * 97
		{"Square10403", 10403},            // 101 * 103
		{"Large", 1_000_036_000_099},      // 1000003 * 1000033
		{"PrimePower", 3 * 3 * 3 * 3 * 3}, // 243
	}
	core := &RhoAttacker{}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n := u128.From64(tc.n)
			factor, stats, err := core.FactorizeCore(context.Background(), func(float64) {}, n, DefaultOptions())
			if err != nil {
				t.Fatalf("rho failed on %d: %v", tc.n, err)
			}
			if factor.Cmp(u128.One) <= 0 || factor.Cmp(n) >= 0 {
				t.Fatalf("factor %s outside (1, n)", factor.String())
			}
			if _, r := n.QuoRem(factor); !r.IsZero() {
				t.Errorf("factor %s does not divide %d", factor.String(), tc.n)
			}
			if stats.Iterations == 0 {
				t.Error("no iterations recorded")
			}
		})
	}
}

func TestRhoIsDeterministic(t *testing.T) {
	t.Parallel()
	core := &RhoAttacker{}
	n := u128.From64(8051)
	f1, s1, err1 := core.FactorizeCore(context.Background(), func(float64) {}, n, DefaultOptions())
	f2, s2, err2 := core.FactorizeCore(context.Background(), func(float64) {}, n, DefaultOptions())
	if err1 != nil || err2 != nil {
		t.Fatalf("runs failed: %v / %v", err1, err2)
	}
	if f1.Cmp(f2) != 0 || s1.Iterations != s2.Iterations {
		t.Errorf("runs diverged: (%s, %d) vs (%s, %d)",
			f1.String(), s1.Iterations, f2.String(), s2.Iterations)
	}
}

func TestRhoExhaustsOnPrime(t *testing.T) {
	t.Parallel()
	core := &RhoAttacker{}
	opts := DefaultOptions()
	opts.RhoRestarts = 2
	opts.RhoIterations = 1000

	_, stats, err := core.FactorizeCore(context.Background(), func(float64) {}, u128.From64(1_000_003), opts)
	if !errors.Is(err, apperrors.ErrNoFactorFound) {
		t.Fatalf("err = %v, want ErrNoFactorFound", err)
	}
	if stats.Iterations != 2000 {
		t.Errorf("Iterations = %d, want the full 2000 budget", stats.Iterations)
	}
}

func TestRhoContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	core := &RhoAttacker{}
	opts := DefaultOptions()
	opts.RhoRestarts = 1
	opts.RhoIterations = 100_000

	// A prime walk never collides usefully, so the periodic check must fire.
	_, _, err := core.FactorizeCore(ctx, func(float64) {}, u128.From64(1_000_003), opts)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRhoZeroBudgetUsesDefaults(t *testing.T) {
	t.Parallel()
	core := &RhoAttacker{}
	factor, _, err := core.FactorizeCore(context.Background(), func(float64) {}, u128.From64(8051), Options{})
	if err != nil {
		t.Fatalf("rho with zeroed budget failed: %v", err)
	}
	if _, r := u128.From64(8051).QuoRem(factor); !r.IsZero() {
		t.Errorf("factor %s does not divide 8051", factor.String())
	}
}
