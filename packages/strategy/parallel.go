package strategy

import (
	"context"
	"runtime"
	"sync"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/tree"
)

// Parallel runs sibling specs on up to degree concurrent workers.
type Parallel struct {
	degree int
}

// NewParallel builds a bounded-parallel strategy. A degree of zero or
// less is clamped to the logical processor count; construction never
// fails.
func NewParallel(degree int) *Parallel {
	if degree <= 0 {
		degree = runtime.NumCPU()
	}
	return &Parallel{degree: degree}
}

// Degree returns the effective concurrency bound.
func (p *Parallel) Degree() int {
	return p.degree
}

// Execute launches up to Degree concurrently executing specs. Each worker
// writes to its own pre-sized result slot, so the batch stays in
// declaration order without serializing a growing list. A worker checks
// bail immediately before starting its spec and records skipped instead
// when triggered; workers already mid-flight finish naturally. When the
// external context is cancelled the call returns ctx.Err() even if some
// siblings had already completed.
func (p *Parallel) Execute(ctx context.Context, sc *StrategyContext) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, p.degree)
	var wg sync.WaitGroup

	var fatalOnce sync.Once
	var fatalErr error

launch:
	for i, spec := range sc.Specs {
		if runCtx.Err() != nil {
			break
		}
		select {
		case sem <- struct{}{}: // acquire a worker slot
		case <-runCtx.Done():
			break launch
		}

		wg.Add(1)
		go func(idx int, spec *tree.Spec) {
			defer wg.Done()
			defer func() { <-sem }()

			if sc.Bail.Triggered() {
				res := report.Skipped(spec, sc.Path)
				sc.Results[idx] = res
				sc.notifySpec(res)
				return
			}

			res, err := sc.RunSpec(runCtx, spec)
			if err != nil {
				fatalOnce.Do(func() {
					fatalErr = err
					cancel() // stop launching further specs
				})
				return
			}
			sc.Results[idx] = res
			sc.notifySpec(res)

			if res.Status == report.StatusFailed && sc.Bail != nil {
				sc.Bail.Signal()
			}
		}(i, spec)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if fatalErr != nil {
		return fatalErr
	}

	sc.notifyBatch()
	return nil
}
