// Package factor provides the attacker abstraction of snfscalc. It exposes an
// `Attacker` interface that hides the concrete factorization algorithm (toy
// SNFS, Pollard's rho, trial division) behind a uniform contract, and a
// decorator that layers the cross-cutting concerns (tracing span, Prometheus
// metrics, structured completion log, progress adaptation and the even-n fast
// path) over the pure cores.
package factor

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/u128"
)

var (
	factorizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snfscalc_factorizations_total",
			Help: "The total number of factorization attempts processed",
		},
		[]string{"algorithm", "status"},
	)
	factorizationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "snfscalc_factorization_duration_seconds",
			Help: "The duration of factorization attempts in seconds",
		},
		[]string{"algorithm"},
	)
	relationsCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snfscalc_sieve_relations_total",
		Help: "The total number of smooth relations collected by sieve runs",
	})
	dependenciesFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snfscalc_sieve_dependencies_total",
		Help: "The total number of GF(2) dependencies surfaced by sieve runs",
	})
)

// ProgressUpdate carries a progress notification from a running attacker.
type ProgressUpdate struct {
	// AttackerIndex identifies which attacker instance reported.
	AttackerIndex int
	// Progress is the completed fraction in [0, 1].
	Progress float64
}

// ProgressReporter is the callback cores invoke to report progress.
type ProgressReporter func(progress float64)

// Stats aggregates the effort counters of one attack run. Fields that do not
// apply to an algorithm stay zero (only the sieve fills the relation fields).
type Stats struct {
	// Iterations counts algorithm steps (rho evaluations, trial divisors,
	// sieve candidates).
	Iterations uint64
	// Relations is the number of smooth relations a sieve run recorded.
	Relations int
	// Dependencies is the number of GF(2) dependencies a sieve run saw.
	Dependencies int
	// FactorBaseSize is the final factor-base column count of a sieve run.
	FactorBaseSize int
}

// Result is the outcome of a successful attack.
type Result struct {
	// Factor is a nontrivial proper divisor p of n.
	Factor u128.Uint128
	// Cofactor is n / Factor.
	Cofactor u128.Uint128
	// Algorithm is the display name of the attacker that produced the result.
	Algorithm string
	// Stats describes the effort spent.
	Stats Stats
}

// Attacker defines the public interface for a factorization attacker.
// It is the primary abstraction used by the orchestration layer to run
// different attack algorithms interchangeably.
type Attacker interface {
	// Factorize attempts to find a nontrivial factor of n. It supports
	// cancellation through the provided context; progress updates are sent
	// asynchronously to progressChan when it is non-nil.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - progressChan: The channel for sending progress updates (may be nil).
	//   - index: A unique index for the attacker instance.
	//   - n: The composite to factor.
	//   - opts: Configuration options for the attack.
	//
	// Returns:
	//   - Result: The factor, cofactor and run statistics.
	//   - error: apperrors.ErrNoFactorFound on exhaustion, ctx.Err() on
	//     cancellation, or a ConfigError for unusable inputs.
	Factorize(ctx context.Context, progressChan chan<- ProgressUpdate, index int, n u128.Uint128, opts Options) (Result, error)

	// Name returns the display name of the attack algorithm.
	Name() string
}

// coreAttacker is the internal interface of a pure attack algorithm.
type coreAttacker interface {
	FactorizeCore(ctx context.Context, reporter ProgressReporter, n u128.Uint128, opts Options) (u128.Uint128, Stats, error)
	Name() string
}

// AttackerRunner implements Attacker by wrapping a coreAttacker with the
// cross-cutting concerns: the even-n fast path, progress adaptation, the
// tracing span, metrics and the completion log.
type AttackerRunner struct {
	core coreAttacker
}

// NewAttacker constructs an Attacker around the given core. It panics if the
// core is nil, ensuring system integrity at registration time.
//
// Parameters:
//   - core: The core attack algorithm to wrap.
//
// Returns:
//   - Attacker: The decorated attacker.
func NewAttacker(core coreAttacker) Attacker {
	if core == nil {
		panic("factor: the `coreAttacker` implementation cannot be nil")
	}
	return &AttackerRunner{core: core}
}

// Name returns the name of the encapsulated core algorithm.
func (a *AttackerRunner) Name() string {
	return a.core.Name()
}

// Factorize runs the attack with tracing, metrics and logging attached.
// A factor returned by the core is verified to be a proper divisor before it
// is handed to the caller; anything else is reported as a FactorizationError.
func (a *AttackerRunner) Factorize(ctx context.Context, progressChan chan<- ProgressUpdate, index int, n u128.Uint128, opts Options) (result Result, err error) {
	tracer := otel.Tracer("factor")
	ctx, span := tracer.Start(ctx, "Factorize")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			if apperrors.IsNoFactor(err) {
				status = "exhausted"
			}
		}
		algoName := a.core.Name()
		factorizationsTotal.WithLabelValues(algoName, status).Inc()
		factorizationDuration.WithLabelValues(algoName).Observe(duration)
		relationsCollected.Add(float64(result.Stats.Relations))
		dependenciesFound.Add(float64(result.Stats.Dependencies))

		log.Debug().
			Str("algo", algoName).
			Str("n", n.String()).
			Float64("duration", duration).
			Str("status", status).
			Msg("factorization attempt completed")
	}()

	if n.Cmp(u128.From64(4)) < 0 {
		return Result{}, apperrors.NewConfigError("n must be at least 4, got %s", n.String())
	}

	reporter := func(float64) {}
	if progressChan != nil {
		reporter = func(progress float64) {
			select {
			case progressChan <- ProgressUpdate{AttackerIndex: index, Progress: progress}:
			default: // never block a running attack on a slow consumer
			}
		}
	}

	// Even n short-circuits every algorithm.
	if n.Lo&1 == 0 {
		reporter(1.0)
		return a.buildResult(n, u128.From64(2), Stats{Iterations: 1})
	}

	factor, stats, coreErr := a.core.FactorizeCore(ctx, reporter, n, opts)
	if coreErr != nil {
		result.Stats = stats
		return result, coreErr
	}
	reporter(1.0)
	return a.buildResult(n, factor, stats)
}

// buildResult validates the divisor and assembles the Result.
func (a *AttackerRunner) buildResult(n, factor u128.Uint128, stats Stats) (Result, error) {
	if factor.Cmp(u128.One) <= 0 || factor.Cmp(n) >= 0 {
		return Result{Stats: stats}, apperrors.FactorizationError{
			Cause: apperrors.NewValidationError("factor", "divisor outside (1, n)"),
		}
	}
	q, r := n.QuoRem(factor)
	if !r.IsZero() {
		return Result{Stats: stats}, apperrors.FactorizationError{
			Cause: apperrors.NewValidationError("factor", "reported divisor does not divide n"),
		}
	}
	return Result{
		Factor:    factor,
		Cofactor:  q,
		Algorithm: a.core.Name(),
		Stats:     stats,
	}, nil
}
