package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, colored by the renderer.
func (w Warning) Display(out io.Writer, r *Renderer) {
	if r == nil {
		r = NewRenderer(false)
	}

	var b strings.Builder
	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}
		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, r.Warn(b.String()))
}

// WarnUnannotated builds the warning shown for error fixtures that declare no
// expected diagnostics; such fixtures can never pass.
func WarnUnannotated(files []string) Warning {
	return Warning{
		Title:      "error fixtures without expected diagnostics",
		Message:    "These fixtures will always fail.",
		Files:      files,
		Suggestion: "Start each error fixture with one '// error: ...' (or note/warning/suggestion) line per expected diagnostic",
	}
}
