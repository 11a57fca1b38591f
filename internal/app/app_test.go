package app

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/snfscalc/internal/errors"
)

func newApp(t *testing.T, args ...string) *Application {
	t.Helper()
	application, err := New(append([]string{"snfscalc"}, args...), io.Discard)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", args, err)
	}
	return application
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New([]string{"snfscalc", "-algo", "ecm"}, io.Discard); err == nil {
		t.Error("New accepted an unknown algorithm")
	}
	if _, err := New([]string{"snfscalc", "-n", "abc"}, io.Discard); err == nil {
		t.Error("New accepted a non-numeric modulus")
	}
}

func TestNewHelpFlag(t *testing.T) {
	_, err := New([]string{"snfscalc", "-h"}, io.Discard)
	if err == nil {
		t.Fatal("New with -h did not return an error")
	}
	if !IsHelpError(err) {
		t.Errorf("IsHelpError(%v) = false, want true", err)
	}
	if IsHelpError(apperrors.ErrNoFactorFound) {
		t.Error("IsHelpError matched an unrelated error")
	}
}

func TestRunQuietAttack(t *testing.T) {
	application := newApp(t, "-n", "15", "-algo", "trial", "-q")

	var buf strings.Builder
	code := application.Run(context.Background(), &buf)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d; output:\n%s", code, apperrors.ExitSuccess, buf.String())
	}
	if got := strings.TrimSpace(buf.String()); got != "3 5" {
		t.Errorf("quiet output = %q, want %q", got, "3 5")
	}
}

func TestRunJSONAttack(t *testing.T) {
	application := newApp(t, "-n", "15", "-algo", "trial", "-json")

	var buf strings.Builder
	code := application.Run(context.Background(), &buf)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d; output:\n%s", code, buf.String())
	}

	var results []struct {
		Algorithm string `json:"algorithm"`
		Factor    string `json:"factor"`
		Cofactor  string `json:"cofactor"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal([]byte(buf.String()), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(results) != 1 || results[0].Factor != "3" || results[0].Cofactor != "5" {
		t.Errorf("JSON results = %+v", results)
	}
}

func TestRunDemo(t *testing.T) {
	// The demo modulus 13^8 + 1 is even, so the attacker layer resolves it
	// as 2 x 407865361 regardless of how far the sieve itself gets.
	application := newApp(t, "-demo", "-algo", "snfs", "-q")

	var buf strings.Builder
	code := application.Run(context.Background(), &buf)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d; output:\n%s", code, buf.String())
	}
	if got := strings.TrimSpace(buf.String()); got != "2 407865361" {
		t.Errorf("demo output = %q, want %q", got, "2 407865361")
	}
}

func TestRunNoFactor(t *testing.T) {
	// A prime modulus with the fallback disabled must exit with the
	// no-factor code.
	application := newApp(t, "-n", "1000003", "-algo", "trial", "-no-fallback", "-q", "-no-color")

	var buf strings.Builder
	code := application.Run(context.Background(), &buf)
	if code != apperrors.ExitErrorNoFactor {
		t.Fatalf("exit code = %d, want %d; output:\n%s", code, apperrors.ExitErrorNoFactor, buf.String())
	}
}

func TestRunFallbackToRho(t *testing.T) {
	// An empty sieve window exhausts instantly; the rho fallback must then
	// factor the modulus.
	application := newApp(t, "-n", "10403", "-algo", "snfs", "-window", "0", "-q")

	var buf strings.Builder
	code := application.Run(context.Background(), &buf)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d; output:\n%s", code, buf.String())
	}
	got := strings.TrimSpace(buf.String())
	if got != "101 103" && got != "103 101" {
		t.Errorf("quiet output = %q, want the pair {101, 103}", got)
	}
}

func TestRunNoFallbackFlag(t *testing.T) {
	application := newApp(t, "-n", "10403", "-algo", "snfs", "-window", "0", "-no-fallback", "-q")

	var buf strings.Builder
	code := application.Run(context.Background(), &buf)
	if code != apperrors.ExitErrorNoFactor {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorNoFactor)
	}
}

func TestRunSavesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	application := newApp(t, "-n", "15", "-algo", "trial", "-q", "-o", path)

	var buf strings.Builder
	if code := application.Run(context.Background(), &buf); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d; output:\n%s", code, buf.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "p = 3") {
		t.Errorf("report content:\n%s", data)
	}
}

func TestRunDisplaysRecoveredKey(t *testing.T) {
	// e = 7 is coprime to phi(10403) = 10200, so the key must be recovered.
	application := newApp(t, "-n", "10403", "-algo", "trial", "-e", "7", "-no-color")

	var buf strings.Builder
	if code := application.Run(context.Background(), &buf); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d; output:\n%s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Recovered RSA key") {
		t.Errorf("key recovery missing from output:\n%s", out)
	}
	if !strings.Contains(out, "8,743") {
		t.Errorf("private exponent missing from output:\n%s", out)
	}
}

func TestRunKeyRecoverySkippedWhenNotCoprime(t *testing.T) {
	// The default e = 3 divides phi(10403) = 10200, so recovery is skipped
	// while the factorization still succeeds.
	application := newApp(t, "-n", "10403", "-algo", "trial", "-no-color")

	var buf strings.Builder
	if code := application.Run(context.Background(), &buf); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d; output:\n%s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Key recovery skipped") {
		t.Errorf("skip notice missing:\n%s", buf.String())
	}
}
