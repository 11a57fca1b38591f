package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/snfscalc/internal/cli"
	"github.com/agbru/snfscalc/internal/config"
	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/factor"
	"github.com/agbru/snfscalc/internal/orchestration"
	"github.com/agbru/snfscalc/internal/rsa"
	"github.com/agbru/snfscalc/internal/server"
	"github.com/agbru/snfscalc/internal/u128"
	"github.com/agbru/snfscalc/internal/ui"
)

// Application represents the snfscalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in various modes (CLI, server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the attacker implementations.
	// Uses the interface type for better testability and dependency injection.
	Factory factor.AttackerFactory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := factor.GlobalFactory()
	availableAlgos := factory.List()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "snfscalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (server or CLI attack).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Standard CLI attack mode
	return a.runAttack(ctx, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runAttack orchestrates the execution of the CLI attack command.
func (a *Application) runAttack(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	n, err := a.Config.Modulus()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	// Get attackers to run
	attackersToRun := cli.GetAttackersToRun(a.Config, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(attackersToRun, out)
	}

	// In quiet mode, use a discard writer for progress display
	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	// Execute attacks
	opts := a.Config.ToAttackOptions()
	results := orchestration.ExecuteAttacks(ctx, attackersToRun, n, opts, progressOut)

	// Fall back to rho when the sieve exhausts its window without a factor.
	results = a.runFallbackIfNeeded(ctx, results, n, opts, progressOut, out)

	// Handle JSON output
	if a.Config.JSONOutput {
		return printJSONResults(results, out)
	}

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}

	return a.analyzeResultsWithOutput(results, n, outputCfg, out)
}

// runFallbackIfNeeded appends a Pollard's rho run when every executed attacker
// exhausted its search bounds, the fallback is enabled, and rho has not
// already been tried. This mirrors the manual escalation an operator would
// perform after a fruitless sieve.
func (a *Application) runFallbackIfNeeded(ctx context.Context, results []orchestration.AttackResult, n u128.Uint128, opts factor.Options, progressOut, out io.Writer) []orchestration.AttackResult {
	if a.Config.NoFallback {
		return results
	}

	allExhausted := len(results) > 0
	for i := range results {
		if results[i].Err == nil || !apperrors.IsNoFactor(results[i].Err) {
			allExhausted = false
			break
		}
	}
	if !allExhausted {
		return results
	}

	rho, err := a.Factory.Get("rho")
	if err != nil {
		return results
	}
	for i := range results {
		if results[i].Name == rho.Name() {
			return results
		}
	}

	if !a.Config.JSONOutput && !a.Config.Quiet {
		fmt.Fprintf(out, "\nSieve exhausted its window; falling back to %s%s%s.\n",
			cli.ColorYellow(), rho.Name(), cli.ColorReset())
	}

	fallbackResults := orchestration.ExecuteAttacks(ctx, []factor.Attacker{rho}, n, opts, progressOut)
	return append(results, fallbackResults...)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.AttackResult, n u128.Uint128, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, n, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	exitCode := orchestration.AnalyzeComparisonResults(results, a.Config, n, out)

	// Handle key recovery and file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		a.displayRecoveredKey(bestResult, out)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, n, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				cli.ColorGreen(), cli.ColorCyan(), outputCfg.OutputFile, cli.ColorReset())
		}
	}

	return exitCode
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func findBestResult(results []orchestration.AttackResult) *orchestration.AttackResult {
	var bestResult *orchestration.AttackResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.AttackResult, n u128.Uint128, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, n, res.Duration, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return err
	}
	return nil
}

// displayRecoveredKey derives and prints the RSA private key once the modulus
// has been factored. Recovery failures (e not coprime to phi) are reported
// but do not change the exit code: the factorization itself succeeded.
func (a *Application) displayRecoveredKey(res *orchestration.AttackResult, out io.Writer) {
	key, err := rsa.RecoverKey(res.Result.Factor, res.Result.Cofactor, u128.From64(a.Config.E))
	if err != nil {
		fmt.Fprintf(out, "\nKey recovery skipped: %v\n", err)
		return
	}
	cli.DisplayRecoveredKey(key, out)
}

// jsonResult represents a single attack result in JSON format.
type jsonResult struct {
	Algorithm string `json:"algorithm"`
	Duration  string `json:"duration"`
	Factor    string `json:"factor,omitempty"`
	Cofactor  string `json:"cofactor,omitempty"`
	Error     string `json:"error,omitempty"`
}

// printJSONResults formats the attack results as a JSON array and writes
// them to the output. This is useful for programmatic consumption of the results.
func printJSONResults(results []orchestration.AttackResult, out io.Writer) int {
	output := make([]jsonResult, len(results))
	for i, res := range results {
		jr := jsonResult{
			Algorithm: res.Name,
			Duration:  res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		} else {
			jr.Factor = res.Result.Factor.String()
			jr.Cofactor = res.Result.Cofactor.String()
		}
		output[i] = jr
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}

	for _, res := range results {
		if res.Err == nil {
			return apperrors.ExitSuccess
		}
	}
	return apperrors.ExitErrorNoFactor
}
