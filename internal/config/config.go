// Package config provides the configuration management for the snfscalc
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/snfscalc/internal/errors"
	"github.com/agbru/snfscalc/internal/factor"
	"github.com/agbru/snfscalc/internal/snfs"
	"github.com/agbru/snfscalc/internal/u128"
)

const (
	// EnvPrefix is the prefix for all environment variables used by snfscalc.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "SNFSCALC_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultN is the default modulus: 13^8 + 1, the demo semiprime.
	DefaultN = "815730722"
	// DefaultE is the default RSA public exponent.
	DefaultE uint64 = 3
	// DefaultDegree is the default algebraic polynomial degree.
	DefaultDegree = 8
	// DefaultFactorBaseBound is the default sieve bound B.
	DefaultFactorBaseBound = 200
	// DefaultSearchWindow is the default search window K.
	DefaultSearchWindow = 5000
	// DefaultTimeout is the default attack timeout.
	DefaultTimeout = 2 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo is the default algorithm selection.
	DefaultAlgo = "snfs"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the modulus under attack to the sieve shape.
type AppConfig struct {
	// N is the decimal representation of the modulus to factor.
	N string
	// E is the RSA public exponent used for key recovery after factoring.
	E uint64
	// Degree is the algebraic polynomial degree d in f(a) = a^d + 1.
	Degree int
	// FactorBaseBound is the sieve bound B for the factor base.
	FactorBaseBound int
	// SearchWindow is the number of offsets k the sieve tries.
	SearchWindow int
	// Algo specifies the attacker to run ("snfs", "rho", "trial", or "all").
	Algo string
	// Timeout sets the maximum duration for the attack.
	Timeout time.Duration
	// NoFallback disables the automatic rho fallback when the sieve exhausts
	// its window.
	NoFallback bool
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// Verbose, if true, includes run statistics in the report.
	Verbose bool
	// Quiet mode - minimal output for scripting purposes.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// Demo, if true, runs the canned demo (13^8 + 1) and exits.
	Demo bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// OutputFile, if specified, saves the report to this file path.
	OutputFile string
}

// Modulus parses the configured N into the 128-bit operand type.
//
// Returns:
//   - u128.Uint128: The parsed modulus.
//   - error: A ConfigError if N is not a decimal 128-bit value.
func (c AppConfig) Modulus() (u128.Uint128, error) {
	n, err := u128.Parse(c.N)
	if err != nil {
		return u128.Zero, apperrors.NewConfigError("invalid modulus %q: %v", c.N, err)
	}
	return n, nil
}

// SieveParams converts the application configuration into snfs.Params.
func (c AppConfig) SieveParams() snfs.Params {
	return snfs.Params{
		Degree:          c.Degree,
		FactorBaseBound: c.FactorBaseBound,
		SearchWindow:    c.SearchWindow,
	}
}

// ToAttackOptions converts the application configuration into the options
// consumed by the attackers. The rho budget keeps its fixed defaults.
func (c AppConfig) ToAttackOptions() factor.Options {
	return factor.Options{
		Degree:          c.Degree,
		FactorBaseBound: c.FactorBaseBound,
		SearchWindow:    c.SearchWindow,
		RhoRestarts:     factor.DefaultRhoRestarts,
		RhoIterations:   factor.DefaultRhoIterations,
	}
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen algorithm is supported.
//
// Parameters:
//   - availableAlgos: A slice of strings listing the valid attacker names.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	n, err := c.Modulus()
	if err != nil {
		return err
	}
	if n.Cmp(u128.From64(4)) < 0 {
		return apperrors.NewConfigError("modulus must be at least 4, got %s", c.N)
	}
	if c.E == 0 {
		return apperrors.NewConfigError("public exponent must be positive")
	}
	if err := c.SieveParams().Validate(); err != nil {
		return err
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != "all" && !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableAlgos: A slice of valid attacker names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Attacker to run: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.StringVar(&config.N, "n", DefaultN, "Modulus to factor, in decimal (up to 128 bits).")
	fs.Uint64Var(&config.E, "e", DefaultE, "RSA public exponent for key recovery after factoring.")
	fs.IntVar(&config.Degree, "degree", DefaultDegree, "Algebraic polynomial degree d in f(a) = a^d + 1 (3-12).")
	fs.IntVar(&config.FactorBaseBound, "fb-bound", DefaultFactorBaseBound, "Factor base bound B: the sieve uses all primes <= B.")
	fs.IntVar(&config.SearchWindow, "window", DefaultSearchWindow, "Search window K: offsets k = 1..K are tried.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the attack.")
	fs.BoolVar(&config.NoFallback, "no-fallback", false, "Disable the automatic Pollard's rho fallback after sieve exhaustion.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Verbose, "v", false, "Include run statistics (relations, dependencies, iterations).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Demo, "demo", false, "Run the canned demo: factor 13^8 + 1 = 815730722.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the report.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")

	setCustomUsage(fs, programName)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set.
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	if config.Demo {
		config.N = DefaultN
		config.Degree = DefaultDegree
		config.FactorBaseBound = DefaultFactorBaseBound
		config.SearchWindow = DefaultSearchWindow
	}
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

// setCustomUsage installs a usage message listing the flag set plus the
// common invocation shapes.
func setCustomUsage(fs *flag.FlagSet, programName string) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(out, "Factor a special-form RSA modulus n ~= m^d + 1 with a toy SNFS,\n")
		fmt.Fprintf(out, "falling back to Pollard's rho, and recover the private exponent.\n\n")
		fmt.Fprintf(out, "Examples:\n")
		fmt.Fprintf(out, "  %s --demo\n", programName)
		fmt.Fprintf(out, "  %s -n 815730722 -degree 8 -fb-bound 200 -window 5000\n", programName)
		fmt.Fprintf(out, "  %s -n 1125938964277027 -algo rho\n", programName)
		fmt.Fprintf(out, "  %s -server -port 8080\n\n", programName)
		fmt.Fprintf(out, "Flags:\n")
		fs.PrintDefaults()
	}
}
