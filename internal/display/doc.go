// Package display renders the harness's terminal output.
//
// Renderer turns status words and pass tallies into text, optionally colored
// with fatih/color. It is created per output stream and carries its own color
// settings, so nothing in the package depends on process-wide state:
//
//	r := display.NewRenderer(display.ColorEnabled("auto", os.Stdout))
//	progress := display.NewProgress(os.Stdout, display.ColumnWidth(paths), r)
//	progress.Section("tests/success")
//	progress.Begin("tests/success/ok.bz")
//	progress.Pass()
//
// Progress prints one line per fixture, padded with dots to a common column
// so the OK/FAIL markers line up. Warning prints multi-line advisory notes.
package display
