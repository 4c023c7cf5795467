package analysis

import (
	"fmt"
	"math"

	"github.com/arvid-k/charsweep/internal/dataset"
)

// DeriveMetrics appends the small-signal figures of merit:
//
//	fug  = gm / (2*pi*cgg)   unity-gain frequency (raw cgg)
//	gmid = gm / id           transconductance efficiency
//	a0   = gm / gds          intrinsic gain
//	jd   = id / W            current density
//
// Division by zero is a physical condition near cutoff, not a fault:
// IEEE 754 Inf/NaN propagate into the dataset and downstream consumers
// filter as needed.
func DeriveMetrics(t *dataset.Table) error {
	cols := make(map[string][]float64, 5)
	for _, name := range []string{"gm", "cgg", "id", "gds", "W"} {
		col, err := t.Column(name)
		if err != nil {
			return fmt.Errorf("analysis: derive: %w", err)
		}
		cols[name] = col
	}

	n := t.Len()
	fug := make([]float64, n)
	gmid := make([]float64, n)
	a0 := make([]float64, n)
	jd := make([]float64, n)

	for i := 0; i < n; i++ {
		fug[i] = cols["gm"][i] / (2 * math.Pi * cols["cgg"][i])
		gmid[i] = cols["gm"][i] / cols["id"][i]
		a0[i] = cols["gm"][i] / cols["gds"][i]
		jd[i] = cols["id"][i] / cols["W"][i]
	}

	for _, c := range []struct {
		name string
		vals []float64
	}{
		{"fug", fug}, {"gmid", gmid}, {"a0", a0}, {"jd", jd},
	} {
		if err := t.Set(c.name, c.vals); err != nil {
			return fmt.Errorf("analysis: derive: %w", err)
		}
	}
	return nil
}

// SelectOutput projects an aggregated, reconstructed, derived table
// onto the persisted column manifest.
func SelectOutput(t *dataset.Table) (*dataset.Table, error) {
	out, err := t.Select(OutputColumns...)
	if err != nil {
		return nil, fmt.Errorf("analysis: output manifest: %w", err)
	}
	return out, nil
}
