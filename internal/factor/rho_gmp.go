//go:build gmp

// This file provides a GMP-backed Pollard's rho attacker, conditionally
// compiled with the "gmp" build tag. The build tag architecture ensures that:
//   - The project builds without GMP (the default, using the u128 kernel)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//
// The walk is identical to RhoAttacker (same start, same constants, same
// restart schedule); only the arithmetic backend differs, with GMP's native
// mpz reduction replacing the double-and-add kernel.

package factor

import (
	"context"

	"github.com/ncw/gmp"

	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/u128"
)

func init() {
	_ = RegisterAttacker("rho-gmp", func() coreAttacker { return &GMPRhoAttacker{} })
}

// GMPRhoAttacker implements Pollard's rho on gmp.Int values. It requires the
// 'gmp' build tag and the libgmp library installed on the system.
type GMPRhoAttacker struct{}

// Name returns the name of the algorithm.
func (g *GMPRhoAttacker) Name() string {
	return "Pollard's Rho (GMP)"
}

// FactorizeCore mirrors RhoAttacker.FactorizeCore over GMP integers.
func (g *GMPRhoAttacker) FactorizeCore(ctx context.Context, reporter ProgressReporter, n u128.Uint128, opts Options) (u128.Uint128, Stats, error) {
	var stats Stats
	restarts := opts.RhoRestarts
	if restarts <= 0 {
		restarts = DefaultRhoRestarts
	}
	budget := opts.RhoIterations
	if budget <= 0 {
		budget = DefaultRhoIterations
	}

	nz := new(gmp.Int)
	if _, ok := nz.SetString(n.String(), 10); !ok {
		return u128.Zero, stats, apperrors.NewConfigError("gmp: cannot parse n %q", n.String())
	}
	one := gmp.NewInt(1)
	diff := new(gmp.Int)
	d := new(gmp.Int)

	totalBudget := float64(restarts) * float64(budget)
	c := gmp.NewInt(1)
	for attempt := 0; attempt < restarts; attempt++ {
		x := gmp.NewInt(2)
		y := gmp.NewInt(2)
		for i := 0; i < budget; i++ {
			stats.Iterations++
			if stats.Iterations%rhoCtxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return u128.Zero, stats, err
				}
				reporter(float64(stats.Iterations) / totalBudget)
			}

			gmpRhoStep(x, c, nz)
			gmpRhoStep(y, c, nz)
			gmpRhoStep(y, c, nz)

			diff.Sub(x, y)
			diff.Abs(diff)
			d.GCD(nil, nil, diff, nz)
			if d.Cmp(one) > 0 && d.Cmp(nz) < 0 {
				f, perr := u128.Parse(d.String())
				if perr != nil {
					return u128.Zero, stats, apperrors.WrapError(perr, "gmp: factor does not fit 128 bits")
				}
				return f, stats, nil
			}
		}
		c.Add(c, gmp.NewInt(2))
	}
	return u128.Zero, stats, apperrors.ErrNoFactorFound
}

// gmpRhoStep advances x to x² + c mod n in place.
func gmpRhoStep(x, c, n *gmp.Int) {
	x.Mul(x, x)
	x.Add(x, c)
	x.Mod(x, n)
}
