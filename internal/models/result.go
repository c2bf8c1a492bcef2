package models

import "time"

// ProcessResult is the captured outcome of one Command.
// Stdout and Stderr have already had terminal escape sequences removed.
type ProcessResult struct {
	Command  Command
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// HasOutput reports whether the process wrote anything to stdout or stderr.
func (r ProcessResult) HasOutput() bool {
	return r.Stdout != "" || r.Stderr != ""
}

// ResultPair holds the results of a CommandPair, in the same order.
type ResultPair struct {
	Primary ProcessResult
	Rerun   ProcessResult
}

// Verdict is the pass/fail outcome of a fixture.
type Verdict string

// Verdict values
const (
	Pass Verdict = "PASS"
	Fail Verdict = "FAIL"
)

// FailureRecord keeps everything needed to explain a failed fixture.
type FailureRecord struct {
	Fixture  Fixture
	Result   ProcessResult  // Primary run
	Rerun    *ProcessResult // Force-success rerun (error fixtures only)
	Expected []string       // Annotated diagnostics (error fixtures only)
	Actual   []string       // Diagnostics extracted from the primary stderr (error fixtures only)
	Reasons  []string       // Which pass conditions were violated
}

// CategorySummary is the tally of a single phase.
type CategorySummary struct {
	Category Category
	Passed   int
	Total    int
}

// Percentage returns the pass rate of the phase in percent.
func (c CategorySummary) Percentage() float64 {
	return percentage(c.Passed, c.Total)
}

// Summary is the aggregate outcome of a whole harness run.
type Summary struct {
	Categories []CategorySummary
	Passed     int
	Total      int
	Failures   []FailureRecord
	Duration   time.Duration
}

// Failed returns the number of failed fixtures.
func (s Summary) Failed() int {
	return s.Total - s.Passed
}

// Percentage returns the overall pass rate in percent.
func (s Summary) Percentage() float64 {
	return percentage(s.Passed, s.Total)
}

// AllPassed reports whether every fixture passed.
func (s Summary) AllPassed() bool {
	return s.Passed == s.Total
}

func percentage(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(passed) / float64(total)
}
