package factor

import (
	"context"

	"github.com/agbru/snfscalc/internal/snfs"
	"github.com/agbru/snfscalc/internal/u128"
)

// SieveAttacker runs the toy Special Number Field Sieve. It is only
// effective on composites of the special form n ≈ m^d + 1; on anything else
// the window exhausts and the attack reports no factor, leaving the caller
// to fall back to rho.
type SieveAttacker struct{}

// Name returns the name of the algorithm.
func (s *SieveAttacker) Name() string {
	return "SNFS (toy)"
}

// FactorizeCore delegates to the snfs pipeline and maps its statistics onto
// the shared Stats shape.
func (s *SieveAttacker) FactorizeCore(ctx context.Context, reporter ProgressReporter, n u128.Uint128, opts Options) (u128.Uint128, Stats, error) {
	f, sieveStats, err := snfs.Factor(ctx, n, opts.SieveParams(), snfs.ProgressFunc(reporter))
	stats := Stats{
		Iterations:     uint64(sieveStats.Candidates),
		Relations:      sieveStats.Relations,
		Dependencies:   sieveStats.Dependencies,
		FactorBaseSize: sieveStats.FactorBaseSize,
	}
	return f, stats, err
}
