// Package orchestration coordinates the concurrent execution of one or more
// factorization attackers against the same modulus and analyzes their
// combined outcome.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/snfscalc/internal/cli"
	"github.com/agbru/snfscalc/internal/config"
	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/factor"
	"github.com/agbru/snfscalc/internal/u128"
	"github.com/agbru/snfscalc/internal/ui"
)

// AttackResult encapsulates the outcome of a single factorization attempt.
// It serves as a standardized container for results from different algorithms,
// facilitating comparison and reporting.
type AttackResult struct {
	// Name is the identifier of the algorithm used (e.g., "Pollard's Rho").
	Name string
	// Result holds the factor pair and run statistics. It is only meaningful
	// when Err is nil.
	Result factor.Result
	// Duration is the time taken to complete the attack.
	Duration time.Duration
	// Err contains any error that occurred during the attack.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking attack
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteAttacks orchestrates the concurrent execution of one or more
// factorization attacks against the same modulus.
//
// It manages the lifecycle of attack goroutines, collects their results,
// and coordinates the display of progress updates. This function is the core
// of the application's concurrency model.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - attackers: A slice of attackers to execute.
//   - n: The modulus under attack.
//   - opts: The attack options (sieve shape, rho budget).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []AttackResult: A slice containing the results of each attack.
func ExecuteAttacks(ctx context.Context, attackers []factor.Attacker, n u128.Uint128, opts factor.Options, out io.Writer) []AttackResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]AttackResult, len(attackers))
	progressChan := make(chan factor.ProgressUpdate, len(attackers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(attackers), out)

	for i, att := range attackers {
		idx, attacker := i, att
		g.Go(func() error {
			startTime := time.Now()
			res, err := attacker.Factorize(ctx, progressChan, idx, n, opts)
			results[idx] = AttackResult{
				Name: attacker.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// samePair reports whether two attack results expose the same unordered
// factor pair. Attackers are free to return either prime first.
func samePair(a, b factor.Result) bool {
	if a.Factor.Cmp(b.Factor) == 0 && a.Cofactor.Cmp(b.Cofactor) == 0 {
		return true
	}
	return a.Factor.Cmp(b.Cofactor) == 0 && a.Cofactor.Cmp(b.Factor) == 0
}

// AnalyzeComparisonResults processes the results from multiple algorithms and
// generates a summary report.
//
// It sorts the results by execution time, validates that all successful
// attacks agree on the factor pair, and displays a comparative table. It
// handles the logic for determining global success or failure based on the
// individual outcomes.
//
// Parameters:
//   - results: The slice of attack results to analyze.
//   - cfg: The application configuration.
//   - n: The modulus under attack.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []AttackResult, cfg config.AppConfig, n u128.Uint128, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *AttackResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sAlgorithm%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			successCount++
			if firstValid == nil {
				firstValid = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could factor the modulus.\n")
		return apperrors.HandleAttackError(firstError, 0, out, cli.CLIColorProvider{})
	}

	mismatch := false
	for i := range results {
		if results[i].Err == nil && !samePair(results[i].Result, firstValid.Result) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the factor pairs of the algorithms.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results agree on the factor pair.\n")
	cli.DisplayResult(firstValid.Result, n, firstValid.Duration, cfg.Verbose, out)
	return apperrors.ExitSuccess
}
