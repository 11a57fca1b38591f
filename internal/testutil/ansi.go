// Package testutil holds small helpers shared by the CLI and report tests.
package testutil

import "regexp"

// csiRegex matches ANSI CSI sequences: ESC [ followed by parameter bytes and
// a final letter. The themes emit only this shape of escape code.
var csiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from s, so tests can assert on the
// text of colored attack reports regardless of the active theme.
//
// Parameters:
//   - s: The string potentially containing ANSI escape codes.
//
// Returns:
//   - string: The input with all escape codes removed.
func StripAnsiCodes(s string) string {
	return csiRegex.ReplaceAllString(s, "")
}
