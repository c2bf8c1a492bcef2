package verdict

import (
	"fmt"
	"io"

	"github.com/harrison/bzharness/internal/display"
	"github.com/harrison/bzharness/internal/models"
)

// Report writes the end-of-run summary: one tally per category, the overall
// tally and then every failure record again under its FAILED heading.
func Report(w io.Writer, r *display.Renderer, summary models.Summary) {
	if summary.Total == 0 {
		return
	}
	if r == nil {
		r = display.NewRenderer(false)
	}

	fmt.Fprintf(w, "\n%s\n", r.Header("summary:"))
	for _, c := range summary.Categories {
		fmt.Fprintf(w, "    %s: %s\n", c.Category, r.Tally(c.Passed, c.Total))
	}
	fmt.Fprintf(w, "total: %s\n", r.Tally(summary.Passed, summary.Total))

	for _, f := range summary.Failures {
		fmt.Fprintf(w, "\n%s\n", r.Failed(f.Fixture.Path))
		fmt.Fprint(w, f.Details())
	}
}

// ExitCode maps a finished run to the process exit status: 0 when every
// fixture passed and 1 otherwise.
func ExitCode(summary models.Summary) int {
	if summary.AllPassed() && len(summary.Failures) == 0 {
		return 0
	}
	return 1
}
