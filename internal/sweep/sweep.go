package sweep

import (
	"fmt"
	"math"
)

// Point is one sample of the characterization grid: channel geometry
// plus bulk-source bias. Drain and gate bias are swept inside the
// simulation engine, not here.
type Point struct {
	W   float64
	L   float64
	Vbs float64
}

// StepRange enumerates Start, Start+Step, ... up to but excluding Stop.
// Step may be negative (bulk bias sweeps downward from 0).
type StepRange struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

// Values materializes the range. A zero step or a step pointing away
// from Stop yields an empty slice. The sample count is fixed up front
// as ceil((Stop-Start)/Step) and each sample is Start + i*Step, so no
// rounding error accumulates across steps; a range like [0, -1) at
// -0.1 yields exactly ten samples and never grazes Stop.
func (r StepRange) Values() []float64 {
	if r.Step == 0 {
		return nil
	}
	n := int(math.Ceil((r.Stop - r.Start) / r.Step))
	if n <= 0 {
		return nil
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = r.Start + float64(i)*r.Step
	}
	return vals
}

// LinRange enumerates Count evenly spaced samples from Min to Max,
// endpoints included. Count of 1 yields just Min.
type LinRange struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Count int     `yaml:"count"`
}

func (r LinRange) Values() []float64 {
	if r.Count <= 0 {
		return nil
	}
	if r.Count == 1 {
		return []float64{r.Min}
	}
	vals := make([]float64, r.Count)
	step := (r.Max - r.Min) / float64(r.Count-1)
	for i := range vals {
		vals[i] = r.Min + float64(i)*step
	}
	// linspace contract: the last sample is exactly Max
	vals[r.Count-1] = r.Max
	return vals
}

// Plan expands the three axes into the full Cartesian grid: outer loop
// over bulk bias, middle over length, inner over width. Job order is
// deterministic so progress reporting and fixtures are reproducible.
func Plan(bulk StepRange, length, width LinRange) ([]Point, error) {
	vbs := bulk.Values()
	ls := length.Values()
	ws := width.Values()

	if len(vbs) == 0 {
		return nil, fmt.Errorf("bulk bias range [%g, %g) step %g: %w", bulk.Start, bulk.Stop, bulk.Step, ErrEmptyRange)
	}
	if len(ls) == 0 {
		return nil, fmt.Errorf("length range [%g, %g] count %d: %w", length.Min, length.Max, length.Count, ErrEmptyRange)
	}
	if len(ws) == 0 {
		return nil, fmt.Errorf("width range [%g, %g] count %d: %w", width.Min, width.Max, width.Count, ErrEmptyRange)
	}

	points := make([]Point, 0, len(vbs)*len(ls)*len(ws))
	for _, vb := range vbs {
		for _, l := range ls {
			for _, w := range ws {
				points = append(points, Point{W: w, L: l, Vbs: vb})
			}
		}
	}
	return points, nil
}
