package models

import (
	"fmt"
	"strings"
)

// Details renders everything known about the failure as plain text:
// the command line(s), captured streams, exit codes and, for error
// fixtures, the wanted and extracted diagnostics.
func (f FailureRecord) Details() string {
	var sb strings.Builder

	sb.WriteString(f.Result.Command.String())
	sb.WriteByte('\n')
	if f.Rerun != nil {
		sb.WriteString(f.Rerun.Command.String())
		sb.WriteByte('\n')
	}

	if f.Result.Stdout != "" {
		sb.WriteString(fmt.Sprintf("stdout:\n%s\n", f.Result.Stdout))
	}
	if f.Result.Stderr != "" {
		sb.WriteString(fmt.Sprintf("stderr:\n%s\n", f.Result.Stderr))
	}
	sb.WriteString(fmt.Sprintf("exit code: %d\n", f.Result.ExitCode))
	if f.Rerun != nil {
		sb.WriteString(fmt.Sprintf("rerun exit code: %d\n", f.Rerun.ExitCode))
	}

	if f.Fixture.Category == CategoryError {
		writeList(&sb, "wanted diagnostics:", f.Expected, "(none)")
		writeList(&sb, "actual diagnostics:", f.Actual, "(none)")
	}

	if len(f.Reasons) > 0 {
		writeList(&sb, "reasons:", f.Reasons, "")
	}

	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string, empty string) {
	sb.WriteString(heading)
	sb.WriteByte('\n')
	if len(items) == 0 && empty != "" {
		sb.WriteString("  ")
		sb.WriteString(empty)
		sb.WriteByte('\n')
	}
	for _, item := range items {
		sb.WriteString("  ")
		sb.WriteString(item)
		sb.WriteByte('\n')
	}
}
