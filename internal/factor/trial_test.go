package factor

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/u128"
)

func TestTrialDivision(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		n    uint64
		want uint64
	}{
		{"SmallestOddComposite", 9, 3},
		{"Semiprime15", 15, 3},
		{"Square49", 49, 7},
		{"Even", 10, 2},
		{"LargerSemiprime", 10403, 101},
	}
	core := &TrialDivisionAttacker{}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			factor, _, err := core.FactorizeCore(context.Background(), func(float64) {}, u128.From64(tc.n), Options{})
			if err != nil {
				t.Fatalf("trial division failed on %d: %v", tc.n, err)
			}
			if factor.Cmp(u128.From64(tc.want)) != 0 {
				t.Errorf("smallest factor of %d = %s, want %d", tc.n, factor.String(), tc.want)
			}
		})
	}
}

func TestTrialDivisionFindsSmallestFactor(t *testing.T) {
	t.Parallel()
	// 3 * 5 * 7: the scan order guarantees the smallest prime factor wins.
	core := &TrialDivisionAttacker{}
	factor, _, err := core.FactorizeCore(context.Background(), func(float64) {}, u128.From64(105), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if factor.Cmp(u128.From64(3)) != 0 {
		t.Errorf("factor = %s, want 3", factor.String())
	}
}

func TestTrialDivisionPrimeExhausts(t *testing.T) {
	t.Parallel()
	core := &TrialDivisionAttacker{}
	for _, p := range []uint64{7, 97, 1_000_003} {
		_, _, err := core.FactorizeCore(context.Background(), func(float64) {}, u128.From64(p), Options{})
		if !errors.Is(err, apperrors.ErrNoFactorFound) {
			t.Errorf("trial division on prime %d: err = %v, want ErrNoFactorFound", p, err)
		}
	}
}

func TestTrialDivisionName(t *testing.T) {
	t.Parallel()
	if got := (&TrialDivisionAttacker{}).Name(); got != "Trial Division" {
		t.Errorf("Name() = %q", got)
	}
}
