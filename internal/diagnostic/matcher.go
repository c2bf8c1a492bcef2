// Package diagnostic extracts diagnostic messages from compiler output and
// compares them against the sequence a fixture expects.
package diagnostic

import (
	"fmt"
	"strings"
)

// Markers are the literal tokens that start a diagnostic message.
var Markers = []string{"error: ", "note: ", "warning: ", "suggestion: "}

// HasMarkerPrefix reports whether s starts with one of the diagnostic markers.
func HasMarkerPrefix(s string) bool {
	for _, m := range Markers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}

// Extract returns the diagnostic messages found in output, in order.
// Each message starts at the earliest remaining marker and runs up to, but
// not including, the next line terminator. Text before a marker on the
// same line is ignored, and scanning resumes after the message.
func Extract(output string) []string {
	var messages []string
	for {
		start := earliestMarker(output)
		if start < 0 {
			return messages
		}
		output = output[start:]

		end := strings.IndexAny(output, "\r\n")
		if end < 0 {
			end = len(output)
		}
		messages = append(messages, output[:end])
		output = output[end:]
	}
}

func earliestMarker(s string) int {
	first := -1
	for _, m := range Markers {
		if i := strings.Index(s, m); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	return first
}

// Equal reports whether actual matches expected exactly, element by element and in order.
func Equal(expected, actual []string) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return false
		}
	}
	return true
}

// Diff describes where actual first departs from expected.
// It returns nil when the sequences are equal.
func Diff(expected, actual []string) []string {
	if Equal(expected, actual) {
		return nil
	}

	n := min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		if expected[i] != actual[i] {
			return []string{
				fmt.Sprintf("diagnostic %d differs:", i+1),
				fmt.Sprintf("  want: %s", expected[i]),
				fmt.Sprintf("  got:  %s", actual[i]),
			}
		}
	}

	if len(expected) > len(actual) {
		lines := []string{fmt.Sprintf("missing %d diagnostic(s):", len(expected)-n)}
		for _, d := range expected[n:] {
			lines = append(lines, "  want: "+d)
		}
		return lines
	}

	lines := []string{fmt.Sprintf("%d unexpected diagnostic(s):", len(actual)-n)}
	for _, d := range actual[n:] {
		lines = append(lines, "  got:  "+d)
	}
	return lines
}
