package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProgressBarRender verifies correct ASCII bar rendering
func TestProgressBarRender(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		width    int
		expected string
	}{
		{"empty progress", 0, 10, 10, "[          ] 0%"},
		{"half progress", 5, 10, 10, "[=====     ] 50%"},
		{"full progress", 10, 10, 10, "[==========] 100%"},
		{"quarter progress", 2, 8, 8, "[==      ] 25%"},
		{"large width", 30, 100, 20, "[======              ] 30%"},
		{"overflow clamps", 12, 10, 10, "[==========] 100%"},
		{"zero total", 0, 0, 4, "[    ] 0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewProgressBar(tt.total, tt.width, false)
			pb.Update(tt.current)
			assert.Equal(t, tt.expected, pb.Render())
		})
	}
}

func TestProgressBarDefaultWidth(t *testing.T) {
	pb := NewProgressBar(4, 0, false)
	pb.Update(4)
	assert.Equal(t, "["+strings.Repeat("=", 10)+"] 100%", pb.Render())
}

func TestProgressBarColor(t *testing.T) {
	pb := NewProgressBar(2, 2, true)
	pb.Update(2)
	assert.Equal(t, "\x1b[32m[==]\x1b[0m 100%", pb.Render())

	pb.Update(1)
	assert.Equal(t, "\x1b[33m[= ]\x1b[0m 50%", pb.Render())
}
