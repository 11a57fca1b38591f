package factor

import (
	"context"

	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/u128"
)

// trialCtxCheckInterval is how many divisor candidates are tested between
// context checks.
const trialCtxCheckInterval = 1 << 16

// TrialDivisionAttacker is the baseline attack: test every odd divisor
// candidate up to √n. Exponential in the bit length, so only useful against
// tiny moduli and as a correctness reference for the other attackers; the
// caller's timeout bounds it on anything larger.
type TrialDivisionAttacker struct{}

// Name returns the name of the algorithm.
func (t *TrialDivisionAttacker) Name() string {
	return "Trial Division"
}

// FactorizeCore scans odd candidates 3, 5, 7, … up to the integer square
// root of n. The even case never reaches the core (the runner short-circuits
// it), but it is handled anyway to keep the core total.
func (t *TrialDivisionAttacker) FactorizeCore(ctx context.Context, reporter ProgressReporter, n u128.Uint128, opts Options) (u128.Uint128, Stats, error) {
	var stats Stats
	if n.Lo&1 == 0 {
		stats.Iterations = 1
		return u128.From64(2), stats, nil
	}

	root := u128.IntRoot(n, 2)
	limit := root.Uint64()
	if !root.IsUint64() {
		limit = ^uint64(0)
	}

	for i := uint64(3); i <= limit; i += 2 {
		stats.Iterations++
		if stats.Iterations%trialCtxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return u128.Zero, stats, err
			}
			reporter(float64(i) / float64(limit))
		}
		if _, r := n.QuoRem64(i); r == 0 {
			return u128.From64(i), stats, nil
		}
		if i > limit-2 {
			break
		}
	}
	return u128.Zero, stats, apperrors.ErrNoFactorFound
}
