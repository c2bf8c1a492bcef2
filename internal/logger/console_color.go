package logger

import (
	"strings"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for console log output.
// Green: passes, Red: failures, Cyan: labels, level names by severity.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	label   *color.Color
	levels  map[string]*color.Color
}

// newColorScheme creates the console color scheme. Each scheme owns its
// colors, so enabling them never touches fatih/color's global switch.
func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
		levels: map[string]*color.Color{
			"TRACE": color.New(color.FgHiBlack),
			"DEBUG": color.New(color.FgCyan),
			"INFO":  color.New(color.FgBlue),
			"WARN":  color.New(color.FgYellow),
			"ERROR": color.New(color.FgRed),
		},
	}

	all := []*color.Color{s.success, s.fail, s.label}
	for _, c := range s.levels {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// level renders a level name in its severity color.
func (s *colorScheme) level(name string) string {
	name = strings.ToUpper(name)
	if c, ok := s.levels[name]; ok {
		return c.Sprint(name)
	}
	return name
}
