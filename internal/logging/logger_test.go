package logging

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// decodeLines parses each JSON log line written to buf.
func decodeLines(t *testing.T, raw string) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v\n%s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerWritesStructuredJSON(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	logger := NewLogger(&buf, "sieve")

	logger.Info("relation found",
		String("algo", "snfs"),
		Int("index", 3),
		Uint64("candidate", 815730722),
		Float64("progress", 0.25),
	)

	entries := decodeLines(t, buf.String())
	if len(entries) != 1 {
		t.Fatalf("got %d log lines, want 1", len(entries))
	}
	entry := entries[0]
	if entry["component"] != "sieve" {
		t.Errorf("component = %v, want %q", entry["component"], "sieve")
	}
	if entry["level"] != "info" || entry["message"] != "relation found" {
		t.Errorf("level/message = %v/%v", entry["level"], entry["message"])
	}
	if entry["algo"] != "snfs" || entry["index"] != float64(3) {
		t.Errorf("fields not applied: %v", entry)
	}
	if entry["candidate"] != float64(815730722) || entry["progress"] != 0.25 {
		t.Errorf("numeric fields not applied: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestLoggerError(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	logger := NewLogger(&buf, "server")

	logger.Error("attack failed", errors.New("window exhausted"), String("algo", "snfs"))

	entries := decodeLines(t, buf.String())
	if len(entries) != 1 {
		t.Fatalf("got %d log lines, want 1", len(entries))
	}
	entry := entries[0]
	if entry["level"] != "error" {
		t.Errorf("level = %v, want %q", entry["level"], "error")
	}
	if entry["error"] != "window exhausted" {
		t.Errorf("error field = %v", entry["error"])
	}
}

func TestLoggerPrintf(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	logger := NewLogger(&buf, "http")

	logger.Printf("listening on port %d", 8080)

	entries := decodeLines(t, buf.String())
	if len(entries) != 1 {
		t.Fatalf("got %d log lines, want 1", len(entries))
	}
	if entries[0]["message"] != "listening on port 8080" {
		t.Errorf("message = %v", entries[0]["message"])
	}
	if entries[0]["level"] != "info" {
		t.Errorf("Printf level = %v, want info", entries[0]["level"])
	}
}

func TestFieldConstructors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		field Field
		key   string
	}{
		{String("a", "x"), "a"},
		{Int("b", 1), "b"},
		{Uint64("c", 2), "c"},
		{Float64("d", 3.5), "d"},
		{Err(errors.New("boom")), "error"},
	}
	for _, tc := range cases {
		if tc.field.Key != tc.key {
			t.Errorf("field key = %q, want %q", tc.field.Key, tc.key)
		}
	}
}
