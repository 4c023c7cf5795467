package sim

import (
	"context"
	"math"

	"github.com/arvid-k/charsweep/internal/dataset"
	"github.com/arvid-k/charsweep/internal/sweep"
)

// Grid is the two-dimensional DC bias grid shared by every job: both
// drain and gate are swept from VSS to VDD in Step increments.
type Grid struct {
	VSS  float64
	VDD  float64
	Step float64
}

// AxisPoints is the number of samples on one axis, endpoints included.
func (g Grid) AxisPoints() int {
	if g.Step <= 0 || g.VDD <= g.VSS {
		return 0
	}
	return int(math.Floor((g.VDD-g.VSS)/g.Step+1e-9)) + 1
}

// Size is the number of rows one job produces.
func (g Grid) Size() int {
	n := g.AxisPoints()
	return n * n
}

// Job is one independent unit of simulation work: a single geometry
// and bulk bias point, the shared bias grid, and the raw quantities to
// collect. A job is owned by exactly one worker for its lifetime.
type Job struct {
	Point      sweep.Point
	Grid       Grid
	Quantities []string
}

// Adapter is the simulation engine boundary. RunDCSweep performs the
// two-dimensional DC sweep for one job and returns one row per grid
// point with the requested quantities as columns, geometry and bulk
// bias echoed into every row. Implementations must not share mutable
// engine state between concurrent calls.
type Adapter interface {
	RunDCSweep(ctx context.Context, job Job) (*dataset.Table, error)
}

// Observer is notified after each completed job. Calls are serialized
// by the pool; done counts completed jobs, not submission order.
type Observer func(done, total int, p sweep.Point)
