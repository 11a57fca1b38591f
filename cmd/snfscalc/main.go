// Command snfscalc factors special-form moduli n ≈ m^d + 1 with a toy
// special number field sieve, falls back to Pollard's rho, and recovers the
// RSA private exponent from the factorization.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/snfscalc/internal/app"
	apperrors "github.com/agbru/snfscalc/internal/errors"
)

func main() {
	os.Exit(run())
}

// run contains the application logic, returning an exit code rather than
// calling os.Exit directly so deferred cleanup always executes.
func run() int {
	// Handle --version in any position, before flag parsing
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
