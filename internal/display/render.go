package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by ColorEnabled
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled decides whether output written to w should be colorized.
// In auto mode color is used only for terminals and never when NO_COLOR is set.
func ColorEnabled(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer formats status words and tallies. It holds no global state:
// each renderer owns its colors, so a colorized and a plain renderer can
// be used side by side.
type Renderer struct {
	ok     *color.Color
	fail   *color.Color
	header *color.Color
	warn   *color.Color
}

// NewRenderer creates a renderer that emits ANSI colors only when enabled is true.
func NewRenderer(enabled bool) *Renderer {
	r := &Renderer{
		ok:     color.New(color.FgHiGreen),
		fail:   color.New(color.FgHiRed),
		header: color.New(color.Bold),
		warn:   color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{r.ok, r.fail, r.header, r.warn} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// OK renders the pass marker.
func (r *Renderer) OK() string {
	return r.ok.Sprint("OK")
}

// Fail renders the failure marker.
func (r *Renderer) Fail() string {
	return r.fail.Sprint("FAIL")
}

// Failed renders the heading of a failure record in the final report.
func (r *Renderer) Failed(path string) string {
	return fmt.Sprintf("%s %s:", r.fail.Sprint("FAILED:"), path)
}

// Header renders a section heading.
func (r *Renderer) Header(text string) string {
	return r.header.Sprint(text)
}

// Warn renders text in the warning color.
func (r *Renderer) Warn(text string) string {
	return r.warn.Sprint(text)
}

// Tally renders "passed/total (xx.xx%) tests passed", green when everything
// passed and red otherwise.
func (r *Renderer) Tally(passed, total int) string {
	c := r.ok
	if passed != total {
		c = r.fail
	}
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(passed) / float64(total)
	}
	return fmt.Sprintf("%s (%s) tests passed",
		c.Sprintf("%d/%d", passed, total),
		c.Sprintf("%.2f%%", pct))
}
