package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ProgressBar renders an ASCII bar such as "[=======   ] 70%".
type ProgressBar struct {
	current     int
	total       int
	width       int
	enableColor bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(total, width int, enableColor bool) *ProgressBar {
	if width < 1 {
		width = 10
	}
	return &ProgressBar{
		total:       total,
		width:       width,
		enableColor: enableColor,
	}
}

// Update sets the current progress value
func (pb *ProgressBar) Update(current int) {
	pb.current = current
}

// Percentage returns the progress percentage (0-100)
func (pb *ProgressBar) Percentage() int {
	if pb.total <= 0 {
		return 0
	}
	return max(0, min(100, (pb.current*100)/pb.total))
}

// Render generates the ASCII progress bar string
func (pb *ProgressBar) Render() string {
	perc := pb.Percentage()
	filled := (perc * pb.width) / 100

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	if pb.enableColor {
		c := color.New(color.FgYellow)
		if perc == 100 {
			c = color.New(color.FgGreen)
		}
		c.EnableColor()
		bar = c.Sprint(bar)
	}
	return fmt.Sprintf("%s %d%%", bar, perc)
}
