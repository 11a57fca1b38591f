package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupContext derives the context that bounds a whole attack run. Every
// attacker checks it periodically, so expiry surfaces as a timeout exit code
// rather than a hung sieve.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The wall-clock budget for the run.
//
// Returns:
//   - context.Context: The bounded context.
//   - context.CancelFunc: A cancel function to defer.
func SetupContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// SetupSignals makes SIGINT and SIGTERM cancel the run, so a Ctrl+C during a
// long sieve unwinds cleanly through the same cancellation path as a timeout.
//
// Parameters:
//   - ctx: The parent context.
//
// Returns:
//   - context.Context: A context canceled on signal receipt.
//   - context.CancelFunc: A function that stops the signal forwarding.
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// SetupLifecycle combines the timeout and signal contexts: the returned
// context is canceled by whichever fires first.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The wall-clock budget for the run.
//
// Returns:
//   - context.Context: The combined context.
//   - *CancelFuncs: Both cancel functions, for a single deferred Cleanup.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	ctx, cancelTimeout := SetupContext(ctx, timeout)
	ctx, stopSignals := SetupSignals(ctx)

	return ctx, &CancelFuncs{
		CancelTimeout: cancelTimeout,
		StopSignals:   stopSignals,
	}
}

// CancelFuncs bundles the lifecycle cancel functions so callers release both
// with one deferred Cleanup.
type CancelFuncs struct {
	// CancelTimeout cancels the timeout context.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// Cleanup releases the signal registration first, then the timeout context.
// Nil members are skipped.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
