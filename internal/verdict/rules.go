// Package verdict judges compiler results against the pass rules of each
// fixture category and drives a whole harness run.
package verdict

import (
	"fmt"

	"github.com/harrison/bzharness/internal/diagnostic"
	"github.com/harrison/bzharness/internal/models"
)

// JudgeSuccess passes when the compiler exited 0 without printing anything.
func JudgeSuccess(r models.ProcessResult) (models.Verdict, []string) {
	var reasons []string
	if r.ExitCode != 0 {
		reasons = append(reasons, fmt.Sprintf("exit code %d, wanted 0", r.ExitCode))
	}
	if r.Stdout != "" {
		reasons = append(reasons, "stdout is not empty")
	}
	if r.Stderr != "" {
		reasons = append(reasons, "stderr is not empty")
	}
	return verdictOf(reasons), reasons
}

// JudgeWarning passes when the compiler exited 0 and printed something.
func JudgeWarning(r models.ProcessResult) (models.Verdict, []string) {
	var reasons []string
	if r.ExitCode != 0 {
		reasons = append(reasons, fmt.Sprintf("exit code %d, wanted 0", r.ExitCode))
	}
	if !r.HasOutput() {
		reasons = append(reasons, "no output, wanted at least one warning")
	}
	return verdictOf(reasons), reasons
}

// JudgeError passes when the diagnostics extracted from the primary stderr
// equal the non-empty expected sequence exactly, the primary run failed and
// the force-success rerun exited 0.
func JudgeError(expected []string, pair models.ResultPair) (models.Verdict, []string) {
	var reasons []string
	if len(expected) == 0 {
		reasons = append(reasons, "fixture declares no expected diagnostics")
	} else {
		reasons = append(reasons, diagnostic.Diff(expected, diagnostic.Extract(pair.Primary.Stderr))...)
	}
	if pair.Primary.ExitCode == 0 {
		reasons = append(reasons, "exit code 0, wanted non-zero")
	}
	if pair.Rerun.ExitCode != 0 {
		reasons = append(reasons, fmt.Sprintf("rerun exit code %d, wanted 0", pair.Rerun.ExitCode))
	}
	return verdictOf(reasons), reasons
}

func verdictOf(reasons []string) models.Verdict {
	if len(reasons) == 0 {
		return models.Pass
	}
	return models.Fail
}
