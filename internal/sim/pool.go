package sim

import (
	"context"
	"sync"
	"time"

	"github.com/arvid-k/charsweep/internal/dataset"
)

// Pool executes jobs against an Adapter with at most size workers in
// flight. Jobs are mutually independent; no state is shared between
// workers beyond the dispatch channel.
type Pool struct {
	adapter Adapter
	size    int
	timeout time.Duration
}

func NewPool(adapter Adapter, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{adapter: adapter, size: size}
}

// WithJobTimeout bounds each adapter call with a deadline. Zero means
// no per-job limit; a non-converging engine then hangs its worker.
func (p *Pool) WithJobTimeout(d time.Duration) *Pool {
	p.timeout = d
	return p
}

// Run dispatches all jobs and blocks until every worker has stopped.
// Results are placed in submission order, though callers should not
// depend on it: each table self-describes its W/L/Vbs. The first job
// failure cancels the remaining work and is returned as a *JobError;
// no partial result set is handed out.
func (p *Pool) Run(ctx context.Context, jobs []Job, obs Observer) ([]*dataset.Table, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*dataset.Table, len(jobs))
	indices := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	workers := p.size
	if workers > len(jobs) {
		workers = len(jobs)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indices {
				tbl, err := p.runOne(runCtx, jobs[idx])
				if err != nil {
					fail(&JobError{Point: jobs[idx].Point, Err: err})
					return
				}
				results[idx] = tbl

				mu.Lock()
				done++
				if obs != nil {
					obs(done, len(jobs), jobs[idx].Point)
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for i := range jobs {
		select {
		case indices <- i:
		case <-runCtx.Done():
			break dispatch
		}
	}
	close(indices)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pool) runOne(ctx context.Context, job Job) (*dataset.Table, error) {
	if p.timeout > 0 {
		jobCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		ctx = jobCtx
	}
	return p.adapter.RunDCSweep(ctx, job)
}
