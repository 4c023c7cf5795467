package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arvid-k/charsweep/internal/analysis"
	"github.com/arvid-k/charsweep/internal/config"
	"github.com/arvid-k/charsweep/internal/dataset"
	"github.com/arvid-k/charsweep/internal/sim"
	"github.com/arvid-k/charsweep/internal/sweep"
)

// analyticAdapter emulates the engine with a long-channel square-law
// model: deterministic, convergent, and zero-valued below threshold so
// the cutoff corner of the grid exercises the Inf/NaN sentinels.
type analyticAdapter struct {
	// dropColumn, when set, is omitted from the table produced for
	// jobs whose Vbs matches dropVbs. Models an adapter defect.
	dropColumn string
	dropVbs    float64
}

const (
	vth0   = 0.4
	kPrime = 200e-6
	lambda = 0.05
	cox    = 8e-3 // per unit area
)

func (a *analyticAdapter) RunDCSweep(ctx context.Context, job sim.Job) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := job.Quantities
	if a.dropColumn != "" && job.Point.Vbs == a.dropVbs {
		kept := make([]string, 0, len(names))
		for _, n := range names {
			if n != a.dropColumn {
				kept = append(kept, n)
			}
		}
		names = kept
	}

	tbl := dataset.New(names...)
	n := job.Grid.AxisPoints()
	row := make(map[string]float64, len(names))

	for i := 0; i < n; i++ {
		vds := job.Grid.VSS + float64(i)*job.Grid.Step
		for j := 0; j < n; j++ {
			vgs := job.Grid.VSS + float64(j)*job.Grid.Step

			p := job.Point
			vth := vth0 - 0.1*p.Vbs
			vov := vgs - vth
			beta := kPrime * p.W / p.L

			var id, gm, gds float64
			switch {
			case vov <= 0:
				// cutoff: all zero
			case vds < vov:
				id = beta * (vov - vds/2) * vds
				gm = beta * vds
				gds = beta * (vov - vds)
			default:
				id = 0.5 * beta * vov * vov * (1 + lambda*vds)
				gm = beta * vov * (1 + lambda*vds)
				gds = 0.5 * beta * vov * vov * lambda
			}

			cg := cox * p.W * p.L
			for k := range row {
				delete(row, k)
			}
			row["W"], row["L"] = p.W, p.L
			row["Vds"], row["Vgs"], row["Vbs"] = vds, vgs, p.Vbs
			row["vth"], row["vdsat"] = vth, math.Max(vov, 0)
			row["id"], row["gm"], row["gds"] = id, gm, gds
			row["gbs"], row["gbd"], row["gmbs"] = 1e-12, 1e-12, gm*0.2
			// raw mutual capacitances: off-diagonals negative,
			// diagonals close the row sums
			row["cgd"], row["cgs"], row["cgb"] = -cg/3, -cg/3, -cg/3
			row["cgg"] = cg
			row["cdg"], row["cds"], row["cdb"] = -cg/4, -cg/4, -cg/4
			row["cdd"] = 0.75 * cg
			row["csg"], row["csd"], row["csb"] = -cg/4, -cg/4, -cg/4
			row["css"] = 0.75 * cg
			row["cbg"], row["cbd"], row["cbs"] = -cg/6, -cg/6, -cg/6
			row["cbb"] = 0.5 * cg

			vals := make([]float64, len(names))
			for k, name := range names {
				vals[k] = row[name]
			}
			if err := tbl.AppendRow(vals...); err != nil {
				return nil, err
			}
		}
	}
	return tbl, nil
}

// failingAdapter refuses to converge for one bulk bias.
type failingAdapter struct {
	analyticAdapter
	failVbs float64
}

func (f *failingAdapter) RunDCSweep(ctx context.Context, job sim.Job) (*dataset.Table, error) {
	if job.Point.Vbs == f.failVbs {
		return nil, errors.New("singular matrix")
	}
	return f.analyticAdapter.RunDCSweep(ctx, job)
}

func singlePointConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.DCStep = 0.3
	cfg.Bulk = sweep.StepRange{Start: 0, Stop: -0.1, Step: -0.1}
	cfg.Length = sweep.LinRange{Min: 1e-7, Max: 1e-7, Count: 1}
	cfg.Width = sweep.LinRange{Min: 1e-6, Max: 1e-6, Count: 1}
	return cfg
}

var _ = Describe("Characterize", func() {
	It("plans exactly one job for a 1x1x1 configuration", func() {
		jobs, err := sim.Jobs(singlePointConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(jobs).To(HaveLen(1))
		Expect(jobs[0].Point.W).To(Equal(1e-6))
		Expect(jobs[0].Quantities).To(Equal(analysis.RawColumns))
	})

	It("produces one row per DC grid point with all derived columns", func() {
		cfg := singlePointConfig()
		data, err := sim.Characterize(context.Background(), cfg, &analyticAdapter{}, nil)
		Expect(err).NotTo(HaveOccurred())

		grid := sim.Grid{VSS: cfg.VSS, VDD: cfg.VDD, Step: cfg.DCStep}
		Expect(data.Len()).To(Equal(grid.Size()))

		for _, name := range []string{"fug", "gmid", "a0", "jd", "cgd", "cgb", "cgs", "cds", "csb", "cdb"} {
			Expect(data.Has(name)).To(BeTrue(), "missing column %s", name)
		}
	})

	It("yields finite metrics above threshold and sentinels at cutoff", func() {
		cfg := singlePointConfig()
		data, err := sim.Characterize(context.Background(), cfg, &analyticAdapter{}, nil)
		Expect(err).NotTo(HaveOccurred())

		vgs, err := data.Column("Vgs")
		Expect(err).NotTo(HaveOccurred())
		vds, _ := data.Column("Vds")
		vth, _ := data.Column("vth")
		gmid, _ := data.Column("gmid")
		fug, _ := data.Column("fug")

		sawCutoff := false
		for i := 0; i < data.Len(); i++ {
			if vgs[i] > vth[i] && vds[i] > 0 {
				Expect(gmid[i]).To(BeNumerically(">", 0), "row %d", i)
				Expect(math.IsInf(fug[i], 0)).To(BeFalse(), "row %d", i)
			} else {
				sawCutoff = true
				Expect(math.IsNaN(gmid[i])).To(BeTrue(), "row %d: cutoff must produce the NaN sentinel", i)
			}
		}
		Expect(sawCutoff).To(BeTrue(), "grid should include the cutoff corner")
	})

	It("projects onto the output manifest", func() {
		data, err := sim.Characterize(context.Background(), singlePointConfig(), &analyticAdapter{}, nil)
		Expect(err).NotTo(HaveOccurred())

		out, err := analysis.SelectOutput(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Names()).To(Equal(analysis.OutputColumns))
		Expect(out.Len()).To(Equal(data.Len()))
	})

	Context("with a defective adapter", func() {
		It("surfaces a schema mismatch instead of reconciling it", func() {
			cfg := singlePointConfig()
			cfg.Bulk = sweep.StepRange{Start: 0, Stop: -0.2, Step: -0.1} // two jobs
			adapter := &analyticAdapter{dropColumn: "vdsat", dropVbs: -0.1}

			_, err := sim.Characterize(context.Background(), cfg, adapter, nil)
			var mismatch *dataset.SchemaMismatchError
			Expect(errors.As(err, &mismatch)).To(BeTrue(), "got %v", err)
		})

		It("aborts the run on a failing job and names its sweep point", func() {
			cfg := singlePointConfig()
			cfg.Bulk = sweep.StepRange{Start: 0, Stop: -0.3, Step: -0.1}
			adapter := &failingAdapter{failVbs: -0.2}

			data, err := sim.Characterize(context.Background(), cfg, adapter, nil)
			Expect(data).To(BeNil())

			var jobErr *sim.JobError
			Expect(errors.As(err, &jobErr)).To(BeTrue(), "got %v", err)
			Expect(jobErr.Point.Vbs).To(BeNumerically("~", -0.2, 1e-9))
		})
	})

	It("is row-set equal across pool sizes", func() {
		cfg := singlePointConfig()
		cfg.Bulk = sweep.StepRange{Start: 0, Stop: -0.5, Step: -0.1}
		cfg.Length = sweep.LinRange{Min: 1e-7, Max: 1e-6, Count: 2}

		cfg.PoolSize = 1
		seq, err := sim.Characterize(context.Background(), cfg, &analyticAdapter{}, nil)
		Expect(err).NotTo(HaveOccurred())

		cfg.PoolSize = 6
		par, err := sim.Characterize(context.Background(), cfg, &analyticAdapter{}, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(par.Len()).To(Equal(seq.Len()))
		Expect(par.Names()).To(Equal(seq.Names()))

		// deterministic adapter + slot-ordered collection: identical tables
		for _, name := range seq.Names() {
			a, _ := seq.Column(name)
			b, _ := par.Column(name)
			for i := range a {
				if math.IsNaN(a[i]) {
					Expect(math.IsNaN(b[i])).To(BeTrue())
					continue
				}
				Expect(b[i]).To(Equal(a[i]), "column %s row %d", name, i)
			}
		}
	})
})
