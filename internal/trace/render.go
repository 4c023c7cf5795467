package trace

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// RenderASCII draws a curve family as a terminal chart, one series per
// bias group, legend below.
func RenderASCII(curves []Curve, caption string) string {
	if len(curves) == 0 {
		return ""
	}

	series := make([][]float64, len(curves))
	for i, c := range curves {
		series[i] = c.Y
	}

	chart := asciigraph.PlotMany(series,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)

	var b strings.Builder
	b.WriteString(chart)
	b.WriteString("\n")
	for _, c := range curves {
		fmt.Fprintf(&b, "  %s\n", c.Label)
	}
	return b.String()
}
