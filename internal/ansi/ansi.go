// Package ansi removes terminal control sequences from captured process output.
package ansi

import "strings"

const csi = "\x1b["

// Strip removes every "ESC [ ... m" sequence from s.
// An ESC [ without a closing 'm' is kept, along with everything after it.
func Strip(s string) string {
	start := strings.Index(s, csi)
	if start < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for start >= 0 {
		end := strings.IndexByte(s[start:], 'm')
		if end < 0 {
			break
		}
		b.WriteString(s[:start])
		s = s[start+end+1:]
		start = strings.Index(s, csi)
	}
	b.WriteString(s)
	return b.String()
}
