package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks is the 8-level block character set for sparklines.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts values into a block sparkline of exactly width
// cells, scaled from zero to the maximum value.
//
// Rules:
//   - Empty values → width spaces
//   - All zeros → all '▁' (floor level)
//   - More values than width → last width values
//   - Fewer values than width → left-pad with spaces
func RenderSparkline(values []float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	values = lastN(values, width)
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	return renderSpark(values, width, 0, slices.Max(values), color)
}

// RenderRangeSparkline is like RenderSparkline but scales between the
// minimum and maximum of the window, so small changes on a high baseline
// (availability hovering near 100%) remain visible. A flat series renders
// at mid height.
func RenderRangeSparkline(values []float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	values = lastN(values, width)
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		style := lipgloss.NewStyle().Foreground(color)
		return style.Render(strings.Repeat(" ", width-len(values)) + strings.Repeat(string(sparkBlocks[3]), len(values)))
	}
	return renderSpark(values, width, lo, hi, color)
}

func lastN(values []float64, n int) []float64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

func renderSpark(values []float64, width int, lo, hi float64, color lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(color)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(values)))

	span := hi - lo
	for _, v := range values {
		var idx int
		if span > 0 {
			idx = int((v - lo) / span * 7)
		}
		if idx < 0 {
			idx = 0
		}
		if idx > 7 {
			idx = 7
		}
		sb.WriteRune(sparkBlocks[idx])
	}
	return style.Render(sb.String())
}
