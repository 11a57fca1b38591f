package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/snfscalc/internal/config"
	"github.com/agbru/snfscalc/internal/factor"
)

// GetAttackersToRun determines which attackers should be executed based on
// the configuration. Returns attackers in alphabetically sorted order for
// consistent, reproducible behavior.
//
// Parameters:
//   - cfg: The application configuration containing the algorithm selection.
//   - factory: The attacker factory to retrieve implementations from.
//
// Returns:
//   - []factor.Attacker: A slice of attackers to execute.
func GetAttackersToRun(cfg config.AppConfig, factory factor.AttackerFactory) []factor.Attacker {
	if cfg.Algo == "all" {
		keys := factory.List() // List() returns sorted keys
		attackers := make([]factor.Attacker, 0, len(keys))
		for _, k := range keys {
			if att, err := factory.Get(k); err == nil {
				attackers = append(attackers, att)
			}
		}
		return attackers
	}
	if att, err := factory.Get(cfg.Algo); err == nil {
		return []factor.Attacker{att}
	}
	return nil
}

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the target modulus, timeout, environment details, and the
// sieve shape.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Attacking n = %s%s%s with a timeout of %s%s%s.\n",
		ColorMagenta(), formatNumberString(cfg.N), ColorReset(), ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
	writeOut(out, "Sieve shape: degree=%s%d%s, factor base bound=%s%d%s, window=%s%d%s.\n",
		ColorCyan(), cfg.Degree, ColorReset(),
		ColorCyan(), cfg.FactorBaseBound, ColorReset(),
		ColorCyan(), cfg.SearchWindow, ColorReset())
}

// PrintExecutionMode displays the execution mode (single algorithm vs comparison).
//
// Parameters:
//   - attackers: The slice of attackers that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(attackers []factor.Attacker, out io.Writer) {
	var modeDesc string
	if len(attackers) > 1 {
		modeDesc = "Parallel comparison of all algorithms"
	} else {
		modeDesc = fmt.Sprintf("Single attack with the %s%s%s algorithm",
			ColorGreen(), attackers[0].Name(), ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Attack ---\n")
}

// writeOut writes a formatted string to the output writer.
//
// Parameters:
//   - out: The destination writer.
//   - format: The format string (see fmt.Printf).
//   - a: Arguments for the format string.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
