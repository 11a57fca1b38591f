package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("bad degree %d", 2)
	if err.Error() != "bad degree 2" {
		t.Errorf("Error() = %q", err.Error())
	}
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("errors.As failed for ConfigError")
	}
}

func TestFactorizationErrorUnwraps(t *testing.T) {
	t.Parallel()
	cause := NewValidationError("factor", "divisor outside (1, n)")
	err := FactorizationError{Cause: cause}

	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want the cause message", err.Error())
	}
	var valErr ValidationError
	if !errors.As(err, &valErr) {
		t.Error("errors.As did not reach the wrapped ValidationError")
	}
	if valErr.Field != "factor" {
		t.Errorf("Field = %q, want %q", valErr.Field, "factor")
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()
	plain := NewServerError("listen failed", nil)
	if plain.Error() != "listen failed" {
		t.Errorf("Error() = %q", plain.Error())
	}

	cause := errors.New("address in use")
	wrapped := NewServerError("listen failed", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is did not find the cause")
	}
	if wrapped.Error() != "listen failed: address in use" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()
	err := NewValidationError("n", "must be at least 4")
	want := "validation failed for n: must be at least 4"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) returned a non-nil error")
	}
	wrapped := WrapError(ErrNoFactorFound, "attack %q", "rho")
	if !errors.Is(wrapped, ErrNoFactorFound) {
		t.Error("wrapped error lost its sentinel")
	}
	if want := `attack "rho": no nontrivial factor found`; wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("walk aborted: %w", context.Canceled), true},
		{ErrNoFactorFound, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := IsContextError(tc.err); got != tc.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestIsNoFactor(t *testing.T) {
	t.Parallel()
	if !IsNoFactor(ErrNoFactorFound) {
		t.Error("IsNoFactor(ErrNoFactorFound) = false")
	}
	if !IsNoFactor(fmt.Errorf("sieve: %w", ErrNoFactorFound)) {
		t.Error("IsNoFactor missed a wrapped sentinel")
	}
	if IsNoFactor(context.Canceled) {
		t.Error("IsNoFactor(context.Canceled) = true")
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout,
		ExitErrorNoFactor, ExitErrorConfig, ExitErrorMismatch, ExitErrorCanceled}
	seen := make(map[int]bool, len(codes))
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d reused", c)
		}
		seen[c] = true
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled = %d, want the conventional 130", ExitErrorCanceled)
	}
}
