package factor

import "github.com/agbru/snfscalc/internal/snfs"

// Default attack parameters, matching the demo-friendly sieve shape
// (n ≈ m^8 + 1 with a small factor base) and the fixed rho budget.
const (
	// DefaultDegree is the default algebraic polynomial degree.
	DefaultDegree = 8
	// DefaultFactorBaseBound is the default sieve bound B.
	DefaultFactorBaseBound = 200
	// DefaultSearchWindow is the default 1-D search window K.
	DefaultSearchWindow = 5000
	// DefaultRhoRestarts is the number of rho restarts with fresh constants.
	DefaultRhoRestarts = 5
	// DefaultRhoIterations is the per-restart iteration budget of rho.
	DefaultRhoIterations = 200_000
)

// Options configures a single attack run. The sieve fields mirror
// snfs.Params; the rho fields bound the Monte-Carlo fallback.
type Options struct {
	// Degree is the exponent d of the algebraic polynomial a^d + 1.
	Degree int
	// FactorBaseBound is the sieve bound B for the factor base.
	FactorBaseBound int
	// SearchWindow is the number of offsets k tried by the sieve.
	SearchWindow int
	// RhoRestarts is how many times rho restarts with a new constant c.
	RhoRestarts int
	// RhoIterations is the iteration budget of each rho restart.
	RhoIterations int
}

// DefaultOptions returns the default attack configuration.
func DefaultOptions() Options {
	return Options{
		Degree:          DefaultDegree,
		FactorBaseBound: DefaultFactorBaseBound,
		SearchWindow:    DefaultSearchWindow,
		RhoRestarts:     DefaultRhoRestarts,
		RhoIterations:   DefaultRhoIterations,
	}
}

// SieveParams converts the options into snfs.Params.
func (o Options) SieveParams() snfs.Params {
	return snfs.Params{
		Degree:          o.Degree,
		FactorBaseBound: o.FactorBaseBound,
		SearchWindow:    o.SearchWindow,
	}
}
