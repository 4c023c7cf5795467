// Package trace pulls spot-check curves out of a finished dataset:
// transfer (id vs Vgs) and output (id vs Vds) characteristics for one
// randomly chosen geometry at zero bulk bias. Presentation only, the
// dataset itself is never modified.
package trace

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/arvid-k/charsweep/internal/dataset"
)

// MaxCurves bounds how many bias groups a family plot shows.
const MaxCurves = 5

type Curve struct {
	Label string
	X     []float64
	Y     []float64
}

// Traces is one geometry's worth of spot-check curves.
type Traces struct {
	W, L     float64
	Transfer []Curve // id vs Vgs, one curve per Vds
	Output   []Curve // id vs Vds, one curve per Vgs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func uniqueSorted(vals []float64) []float64 {
	seen := make(map[float64]bool)
	out := make([]float64, 0)
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// Extract picks a random (W, L) pair present in the dataset, keeps its
// zero-bulk-bias rows and groups them into curve families. Terminal
// voltages are rounded to two digits before grouping, mirroring the
// grid resolution.
func Extract(t *dataset.Table, rng *rand.Rand) (*Traces, error) {
	cols := make(map[string][]float64, 6)
	for _, name := range []string{"W", "L", "Vds", "Vgs", "Vbs", "id"} {
		col, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("trace: %w", err)
		}
		cols[name] = col
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("trace: empty dataset")
	}

	w := pick(rng, uniqueSorted(cols["W"]))
	l := pick(rng, uniqueSorted(cols["L"]))

	// rows of the chosen geometry at Vbs == 0
	idx := make([]int, 0)
	for i := 0; i < t.Len(); i++ {
		if cols["W"][i] == w && cols["L"][i] == l && round2(cols["Vbs"][i]) == 0 {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil, fmt.Errorf("trace: no rows at Vbs=0 for W=%g L=%g", w, l)
	}

	tr := &Traces{W: w, L: l}
	tr.Transfer = family(rng, idx, cols["Vds"], cols["Vgs"], cols["id"], "Vds")
	tr.Output = family(rng, idx, cols["Vgs"], cols["Vds"], cols["id"], "Vgs")
	return tr, nil
}

func pick(rng *rand.Rand, vals []float64) float64 {
	return vals[rng.Intn(len(vals))]
}

// family groups rows by the rounded fix column and returns up to
// MaxCurves randomly chosen groups as curves over the sweep column.
func family(rng *rand.Rand, idx []int, fix, x, y []float64, fixName string) []Curve {
	groups := make(map[float64][]int)
	for _, i := range idx {
		key := round2(fix[i])
		groups[key] = append(groups[key], i)
	}

	keys := make([]float64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	if len(keys) > MaxCurves {
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		keys = keys[:MaxCurves]
		sort.Float64s(keys)
	}

	curves := make([]Curve, 0, len(keys))
	for _, k := range keys {
		rows := groups[k]
		sort.Slice(rows, func(i, j int) bool { return x[rows[i]] < x[rows[j]] })

		c := Curve{Label: fmt.Sprintf("%s = %.2f V", fixName, k)}
		for _, i := range rows {
			c.X = append(c.X, round2(x[i]))
			c.Y = append(c.Y, y[i])
		}
		curves = append(curves, c)
	}
	return curves
}
