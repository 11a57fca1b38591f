package apperrors

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type loudColors struct{}

func (loudColors) Yellow() string { return "<y>" }
func (loudColors) Reset() string  { return "</y>" }

func TestHandleAttackError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{"Nil", nil, ExitSuccess, ""},
		{"Timeout", context.DeadlineExceeded, ExitErrorTimeout, "Timeout"},
		{"Canceled", context.Canceled, ExitErrorCanceled, "Canceled"},
		{"Exhausted", ErrNoFactorFound, ExitErrorNoFactor, "Exhausted"},
		{"WrappedExhausted", WrapError(ErrNoFactorFound, "rho"), ExitErrorNoFactor, "Exhausted"},
		{"Generic", errors.New("boom"), ExitErrorGeneric, "boom"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf strings.Builder
			code := HandleAttackError(tc.err, 0, &buf, nil)
			if code != tc.wantCode {
				t.Errorf("exit code = %d, want %d", code, tc.wantCode)
			}
			if tc.wantText != "" && !strings.Contains(buf.String(), tc.wantText) {
				t.Errorf("output %q does not mention %q", buf.String(), tc.wantText)
			}
		})
	}
}

func TestHandleAttackErrorIncludesDuration(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	HandleAttackError(context.DeadlineExceeded, 3*time.Second, &buf, loudColors{})
	out := buf.String()
	if !strings.Contains(out, "3s") {
		t.Errorf("output %q does not mention the duration", out)
	}
	if !strings.Contains(out, "<y>3s</y>") {
		t.Errorf("output %q does not color the duration", out)
	}
}

func TestDefaultColorProviderIsPlain(t *testing.T) {
	t.Parallel()
	var p DefaultColorProvider
	if p.Yellow() != "" || p.Reset() != "" {
		t.Error("DefaultColorProvider emitted escape codes")
	}
}
