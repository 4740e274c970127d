package cli

import (
	"github.com/guptarohit/asciigraph"
)

// RenderLineChart plots a single series as an ASCII line chart.
// Returns "" when there is nothing to plot.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	// asciigraph needs at least two points to draw a line.
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.DarkCyan),
	)
}
