package analysis

import (
	"fmt"

	"github.com/arvid-k/charsweep/internal/dataset"
)

// capInputs names the raw mutual-capacitance columns the
// reconstruction reads. All sixteen are snapshotted before any output
// is written, since cgd/cgs/cds are overwritten in place.
var capInputs = []string{
	"cbb", "csb", "cdb", "cgb",
	"css", "csd", "csg", "cds",
	"cdd", "cdg", "cbs", "cbd",
	"cbg", "cgd", "cgs", "cgg",
}

// ReconstructCapacitances rewrites the raw mutual capacitances into
// the six physical two-terminal capacitances cgd, cgb, cgs, cds, csb,
// cdb. The simulator reports signed trans-capacitances referenced to a
// single port; under charge conservation at each node the physical
// value between two non-bulk terminals is the negative off-diagonal
// average, and a terminal-to-bulk value is the diagonal term corrected
// by the half-sum of its mutual terms. cgg is left untouched, the
// unity-gain frequency needs it raw.
func ReconstructCapacitances(t *dataset.Table) error {
	raw := make(map[string][]float64, len(capInputs))
	for _, name := range capInputs {
		col, err := t.Column(name)
		if err != nil {
			return fmt.Errorf("analysis: reconstruct: %w", err)
		}
		// snapshot: the output columns below alias some input names
		raw[name] = append([]float64(nil), col...)
	}

	n := t.Len()
	cgd := make([]float64, n)
	cgb := make([]float64, n)
	cgs := make([]float64, n)
	cds := make([]float64, n)
	csb := make([]float64, n)
	cdb := make([]float64, n)

	for i := 0; i < n; i++ {
		cgd[i] = -0.5 * (raw["cdg"][i] + raw["cgd"][i])
		cgb[i] = raw["cgg"][i] + 0.5*(raw["cdg"][i]+raw["cgd"][i]+raw["csg"][i]+raw["cgs"][i])
		cgs[i] = -0.5 * (raw["cgs"][i] + raw["csg"][i])
		cds[i] = -0.5 * (raw["cds"][i] + raw["csd"][i])
		csb[i] = raw["css"][i] + 0.5*(raw["cds"][i]+raw["cgs"][i]+raw["csd"][i]+raw["cgs"][i])
		cdb[i] = raw["cdd"][i] + 0.5*(raw["cdg"][i]+raw["cds"][i]+raw["cgd"][i]+raw["csd"][i])
	}

	for name, col := range map[string][]float64{
		"cgd": cgd, "cgb": cgb, "cgs": cgs,
		"cds": cds, "csb": csb, "cdb": cdb,
	} {
		if err := t.Set(name, col); err != nil {
			return fmt.Errorf("analysis: reconstruct: %w", err)
		}
	}
	return nil
}
