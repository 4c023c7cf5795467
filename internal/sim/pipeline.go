package sim

import (
	"context"

	"github.com/arvid-k/charsweep/internal/analysis"
	"github.com/arvid-k/charsweep/internal/config"
	"github.com/arvid-k/charsweep/internal/dataset"
	"github.com/arvid-k/charsweep/internal/sweep"
)

// Jobs expands the configured sweep axes into the full job list. Every
// job shares the same bias grid and quantity set.
func Jobs(cfg *config.Config) ([]Job, error) {
	points, err := sweep.Plan(cfg.Bulk, cfg.Length, cfg.Width)
	if err != nil {
		return nil, err
	}

	grid := Grid{VSS: cfg.VSS, VDD: cfg.VDD, Step: cfg.DCStep}
	jobs := make([]Job, len(points))
	for i, p := range points {
		jobs[i] = Job{Point: p, Grid: grid, Quantities: analysis.RawColumns}
	}
	return jobs, nil
}

// Characterize runs the whole sweep-and-aggregate pipeline: plan the
// grid, execute every job through the pool, concatenate the raw result
// tables, reconstruct the physical capacitances and append the derived
// metrics. Aggregation and post-processing run single threaded, after
// the pool barrier. The returned table still carries all raw columns;
// apply analysis.SelectOutput before persisting.
func Characterize(ctx context.Context, cfg *config.Config, adapter Adapter, obs Observer) (*dataset.Table, error) {
	jobs, err := Jobs(cfg)
	if err != nil {
		return nil, err
	}

	pool := NewPool(adapter, cfg.PoolSize).WithJobTimeout(cfg.JobTimeout)
	tables, err := pool.Run(ctx, jobs, obs)
	if err != nil {
		return nil, err
	}

	data, err := dataset.Concat(tables)
	if err != nil {
		return nil, err
	}

	if err := analysis.ReconstructCapacitances(data); err != nil {
		return nil, err
	}
	if err := analysis.DeriveMetrics(data); err != nil {
		return nil, err
	}
	return data, nil
}
