package factor

import (
	"context"

	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/u128"
)

// rhoCtxCheckInterval is how many rho iterations run between context checks.
const rhoCtxCheckInterval = 1024

// RhoAttacker implements Pollard's rho with Floyd cycle detection: the
// tortoise steps once through x -> x² + c mod n, the hare twice, and a cycle
// collision exposes a factor through gcd(|x - y|, n). The walk is fully
// deterministic (fixed start x = y = 2, with the constant c stepping through
// 1, 3, 5, ... across restarts), so identical inputs always take the identical
// path. Expected cost is O(n^¼) by the birthday paradox.
type RhoAttacker struct{}

// Name returns the name of the algorithm.
func (r *RhoAttacker) Name() string {
	return "Pollard's Rho"
}

// FactorizeCore runs the bounded Monte-Carlo search: RhoRestarts walks of at
// most RhoIterations steps each. Exhausting the budget reports
// apperrors.ErrNoFactorFound.
func (r *RhoAttacker) FactorizeCore(ctx context.Context, reporter ProgressReporter, n u128.Uint128, opts Options) (u128.Uint128, Stats, error) {
	var stats Stats
	restarts := opts.RhoRestarts
	if restarts <= 0 {
		restarts = DefaultRhoRestarts
	}
	budget := opts.RhoIterations
	if budget <= 0 {
		budget = DefaultRhoIterations
	}

	totalBudget := float64(restarts) * float64(budget)
	c := u128.One
	for attempt := 0; attempt < restarts; attempt++ {
		x := u128.From64(2)
		y := u128.From64(2)
		for i := 0; i < budget; i++ {
			stats.Iterations++
			if stats.Iterations%rhoCtxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return u128.Zero, stats, err
				}
				reporter(float64(stats.Iterations) / totalBudget)
			}

			x = rhoStep(x, c, n)
			y = rhoStep(rhoStep(y, c, n), c, n)

			d := u128.Gcd(x.AbsDiff(y), n)
			if d.Cmp(u128.One) > 0 && d.Cmp(n) < 0 {
				return d, stats, nil
			}
		}
		c = c.Add(u128.From64(2))
	}
	return u128.Zero, stats, apperrors.ErrNoFactorFound
}

// rhoStep evaluates x² + c mod n with overflow-safe modular arithmetic.
func rhoStep(x, c, n u128.Uint128) u128.Uint128 {
	return u128.AddMod(u128.MulMod(x, x, n), c.Mod(n), n)
}
