package sim

import (
	"fmt"

	"github.com/arvid-k/charsweep/internal/sweep"
)

// JobError carries the sweep point whose simulation failed. One failed
// job aborts the whole run; there are no partial outcomes.
type JobError struct {
	Point sweep.Point
	Err   error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("sim: job W=%g L=%g Vbs=%g: %v", e.Point.W, e.Point.L, e.Point.Vbs, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }
