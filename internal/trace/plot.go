package trace

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SavePlot renders a curve family to an image file; the extension
// picks the format (svg, png, pdf). logY switches the current axis to
// a log scale, the usual view for transfer characteristics, dropping
// non-positive samples that a log axis cannot show.
func SavePlot(curves []Curve, title, xLabel, path string, logY bool) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Id [A]"
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	for i, c := range curves {
		pts := make(plotter.XYs, 0, len(c.X))
		for j := range c.X {
			y := c.Y[j]
			if math.IsNaN(y) || math.IsInf(y, 0) || (logY && y <= 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: c.X[j], Y: y})
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("trace: plot %s: %w", c.Label, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(c.Label, line)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
