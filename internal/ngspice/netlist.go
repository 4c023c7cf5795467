package ngspice

import (
	"fmt"
	"strings"

	"github.com/arvid-k/charsweep/internal/sim"
)

// vector maps a dataset column name onto the ngspice internal device
// parameter that produces it.
func vector(quantity string) string {
	return fmt.Sprintf("@m0[%s]", strings.ToLower(quantity))
}

// Netlist renders the characterization testbench for one job: ideal
// voltage sources on drain, gate and bulk, source grounded, and a
// batch control block that runs the two-dimensional DC sweep and dumps
// the requested device parameters with wrdata.
func Netlist(libPath, device string, temperature float64, job sim.Job, dataPath string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "* charsweep %s characterization W=%g L=%g Vbs=%g\n", device, job.Point.W, job.Point.L, job.Point.Vbs)
	fmt.Fprintf(&b, ".include '%s'\n", libPath)
	fmt.Fprintf(&b, ".options temp=%g tnom=%g\n", temperature, temperature)
	b.WriteString("vd d 0 dc 0\n")
	b.WriteString("vg g 0 dc 0\n")
	fmt.Fprintf(&b, "vb b 0 dc %g\n", job.Point.Vbs)
	fmt.Fprintf(&b, "m0 d g 0 b %s w=%g l=%g\n", device, job.Point.W, job.Point.L)

	vectors := make([]string, len(job.Quantities))
	for i, q := range job.Quantities {
		vectors[i] = vector(q)
	}

	b.WriteString("\n.control\n")
	fmt.Fprintf(&b, "save %s\n", strings.Join(vectors, " "))
	fmt.Fprintf(&b, "dc vd %g %g %g vg %g %g %g\n",
		job.Grid.VSS, job.Grid.VDD, job.Grid.Step,
		job.Grid.VSS, job.Grid.VDD, job.Grid.Step)
	fmt.Fprintf(&b, "wrdata %s %s\n", dataPath, strings.Join(vectors, " "))
	b.WriteString("quit\n")
	b.WriteString(".endc\n")
	b.WriteString(".end\n")

	return b.String()
}
