// Package config provides the configuration management for the snfscalc
// application. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given
// key (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as uint64, or the default value if
// not set or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as bool, or the default value if not
// set. Accepts "true", "1", "yes" as true; "false", "0", "no" as false
// (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the
// given key (prefixed with EnvPrefix) parsed as time.Duration, or the
// default value if not set or invalid. Accepts formats like "5m", "30s".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - SNFSCALC_N: Modulus to factor, decimal (string)
//   - SNFSCALC_E: RSA public exponent (uint64)
//   - SNFSCALC_DEGREE: Algebraic polynomial degree (int)
//   - SNFSCALC_FB_BOUND: Factor base bound B (int)
//   - SNFSCALC_WINDOW: Search window K (int)
//   - SNFSCALC_ALGO: Attacker to run (string: snfs, rho, trial, all)
//   - SNFSCALC_TIMEOUT: Attack timeout (duration: "2m", "30s")
//   - SNFSCALC_PORT: Port for server mode (string)
//   - SNFSCALC_SERVER: Enable server mode (bool)
//   - SNFSCALC_JSON: Enable JSON output (bool)
//   - SNFSCALC_VERBOSE: Enable verbose output (bool)
//   - SNFSCALC_QUIET: Enable quiet mode (bool)
//   - SNFSCALC_NO_COLOR: Disable colored output (bool)
//   - SNFSCALC_NO_FALLBACK: Disable the rho fallback (bool)
//   - SNFSCALC_OUTPUT: Output file path (string)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "n") {
		config.N = getEnvString("N", config.N)
	}
	if !isFlagSet(fs, "e") {
		config.E = getEnvUint64("E", config.E)
	}
	if !isFlagSet(fs, "degree") {
		config.Degree = getEnvInt("DEGREE", config.Degree)
	}
	if !isFlagSet(fs, "fb-bound") {
		config.FactorBaseBound = getEnvInt("FB_BOUND", config.FactorBaseBound)
	}
	if !isFlagSet(fs, "window") {
		config.SearchWindow = getEnvInt("WINDOW", config.SearchWindow)
	}
	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	if !isFlagSet(fs, "no-fallback") {
		config.NoFallback = getEnvBool("NO_FALLBACK", config.NoFallback)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
}
