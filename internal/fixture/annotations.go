package fixture

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harrison/bzharness/internal/diagnostic"
)

// commentPrefix precedes every annotation line; it is not part of the expected message.
const commentPrefix = "// "

// ReadExpected opens an error fixture and returns its annotated diagnostics.
func ReadExpected(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	expected, err := ParseExpected(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return expected, nil
}

// ParseExpected collects the leading run of annotation lines from r.
// An annotation line is "// " followed by a diagnostic marker; the stored
// message is the line without the comment prefix or its line terminator.
// Collection stops at the first line that is not an annotation, so
// annotations later in the file are ignored.
func ParseExpected(r io.Reader) ([]string, error) {
	var expected []string

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				return expected, nil
			}
			return nil, err
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		message, ok := annotation(line)
		if !ok {
			return expected, nil
		}
		expected = append(expected, message)

		if err == io.EOF {
			return expected, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func annotation(line string) (string, bool) {
	if !strings.HasPrefix(line, commentPrefix) {
		return "", false
	}
	message := line[len(commentPrefix):]
	if !diagnostic.HasMarkerPrefix(message) {
		return "", false
	}
	return message, true
}

// FormatAnnotations renders diagnostics as a fixture header, one annotation per line.
func FormatAnnotations(diagnostics []string) string {
	var sb strings.Builder
	for _, d := range diagnostics {
		sb.WriteString(commentPrefix)
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
	return sb.String()
}
