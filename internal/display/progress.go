package display

import (
	"fmt"
	"io"
	"strings"
)

// MinColumnWidth is the narrowest the fixture name column is ever padded to.
const MinColumnWidth = 60

// indent precedes every fixture line.
const indent = "    "

// ColumnWidth returns the padded width of the fixture name column:
// the longest path plus three dots, but never less than MinColumnWidth.
func ColumnWidth(paths []string) int {
	width := MinColumnWidth
	for _, p := range paths {
		if len(p)+3 > width {
			width = len(p) + 3
		}
	}
	return width
}

// Progress prints one live line per fixture: the path padded with dots is
// written before the fixture is waited on, and OK or FAIL completes the
// line once its verdict is known.
type Progress struct {
	writer   io.Writer
	width    int
	renderer *Renderer
	open     bool
}

// NewProgress creates a progress reporter writing to w.
func NewProgress(w io.Writer, width int, renderer *Renderer) *Progress {
	if width < 1 {
		width = MinColumnWidth
	}
	if renderer == nil {
		renderer = NewRenderer(false)
	}
	return &Progress{
		writer:   w,
		width:    width,
		renderer: renderer,
	}
}

// Section announces the fixtures of a category directory.
func (p *Progress) Section(dir string) {
	p.finishOpen()
	fmt.Fprintf(p.writer, "running tests in %s:\n", dir)
}

// Begin starts the line of a fixture. The line stays open until Pass or Fail.
func (p *Progress) Begin(path string) {
	p.finishOpen()
	fmt.Fprint(p.writer, indent+padDots(path, p.width))
	p.open = true
}

// Pass completes the open line with OK.
func (p *Progress) Pass() {
	fmt.Fprintln(p.writer, p.renderer.OK())
	p.open = false
}

// Fail completes the open line with FAIL.
func (p *Progress) Fail() {
	fmt.Fprintln(p.writer, p.renderer.Fail())
	p.open = false
}

// Tally prints a pass count line.
func (p *Progress) Tally(passed, total int) {
	p.finishOpen()
	fmt.Fprintln(p.writer, p.renderer.Tally(passed, total))
}

// Abort ends a line left open by Begin when no verdict will follow.
func (p *Progress) Abort() {
	p.finishOpen()
}

// finishOpen terminates a line left open by Begin so later output starts on its own line.
func (p *Progress) finishOpen() {
	if p.open {
		fmt.Fprintln(p.writer)
		p.open = false
	}
}

func padDots(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(".", width-len(s))
}
