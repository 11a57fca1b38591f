// Package cli provides output utilities for exporting attack results.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/snfscalc/internal/factor"
	"github.com/agbru/snfscalc/internal/rsa"
	"github.com/agbru/snfscalc/internal/u128"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose includes run statistics in the report.
	Verbose bool
}

// DisplayResult formats and prints the final factorization result.
// It shows the two factors, verifies the product, and, when verbose is set,
// the run statistics of the winning attacker.
//
// Parameters:
//   - res: The attack result.
//   - n: The modulus that was factored.
//   - duration: The time taken for the attack.
//   - verbose: If true, prints run statistics.
//   - out: The io.Writer for the output.
func DisplayResult(res factor.Result, n u128.Uint128, duration time.Duration, verbose bool, out io.Writer) {
	durationStr := FormatExecutionDuration(duration)
	if duration == 0 {
		durationStr = "< 1µs"
	}

	fmt.Fprintf(out, "\n%s--- Factorization ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "n = %s%s%s\n", ColorMagenta(), formatNumberString(n.String()), ColorReset())
	fmt.Fprintf(out, "  = %s%s%s × %s%s%s\n",
		ColorGreen(), formatNumberString(res.Factor.String()), ColorReset(),
		ColorGreen(), formatNumberString(res.Cofactor.String()), ColorReset())
	fmt.Fprintf(out, "Algorithm: %s%s%s, time: %s%s%s\n",
		ColorBlue(), res.Algorithm, ColorReset(), ColorYellow(), durationStr, ColorReset())

	if verbose {
		fmt.Fprintf(out, "\n%s--- Run statistics ---%s\n", ColorBold(), ColorReset())
		if res.Stats.Iterations > 0 {
			fmt.Fprintf(out, "Iterations       : %s%s%s\n", ColorCyan(), formatNumberString(fmt.Sprintf("%d", res.Stats.Iterations)), ColorReset())
		}
		if res.Stats.FactorBaseSize > 0 {
			fmt.Fprintf(out, "Factor base size : %s%d%s\n", ColorCyan(), res.Stats.FactorBaseSize, ColorReset())
			fmt.Fprintf(out, "Relations        : %s%d%s\n", ColorCyan(), res.Stats.Relations, ColorReset())
			fmt.Fprintf(out, "Dependencies     : %s%d%s\n", ColorCyan(), res.Stats.Dependencies, ColorReset())
		}
	}
}

// DisplayRecoveredKey prints the RSA key material derived from a successful
// factorization, together with an encrypt/decrypt round trip that proves the
// private exponent works.
//
// Parameters:
//   - key: The recovered key.
//   - out: The io.Writer for the output.
func DisplayRecoveredKey(key rsa.Key, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Recovered RSA key ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "phi(n) = %s%s%s\n", ColorCyan(), formatNumberString(key.Phi.String()), ColorReset())
	fmt.Fprintf(out, "e      = %s%s%s\n", ColorCyan(), key.E.String(), ColorReset())
	fmt.Fprintf(out, "d      = %s%s%s\n", ColorGreen(), formatNumberString(key.D.String()), ColorReset())

	const sample = "snfs"
	blocks, err := rsa.Encrypt([]byte(sample), key.N, key.E)
	if err != nil {
		fmt.Fprintf(out, "Round trip skipped: %v\n", err)
		return
	}
	plain, err := rsa.Decrypt(blocks, key.N, key.D)
	if err != nil || string(plain) != sample {
		fmt.Fprintf(out, "%sRound trip FAILED%s\n", ColorRed(), ColorReset())
		return
	}
	fmt.Fprintf(out, "Round trip: %q -> encrypt -> decrypt -> %s%q ✓%s\n",
		sample, ColorGreen(), string(plain), ColorReset())
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line "p q" pair suitable for scripting.
//
// Parameters:
//   - res: The attack result.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(res factor.Result) string {
	return fmt.Sprintf("%s %s", res.Factor.String(), res.Cofactor.String())
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - res: The attack result.
func DisplayQuietResult(out io.Writer, res factor.Result) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// WriteResultToFile writes an attack result to a file.
//
// Parameters:
//   - res: The attack result.
//   - n: The modulus that was factored.
//   - duration: The attack duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(res factor.Result, n u128.Uint128, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Factorization Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", res.Algorithm)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %s\n", n.String())
	fmt.Fprintf(file, "\n")

	fmt.Fprintf(file, "p = %s\n", res.Factor.String())
	fmt.Fprintf(file, "q = %s\n", res.Cofactor.String())

	return nil
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - res: The attack result.
//   - n: The modulus that was factored.
//   - duration: The attack duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, res factor.Result, n u128.Uint128, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, res)
	} else {
		DisplayResult(res, n, duration, config.Verbose, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(res, n, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}

	return nil
}
