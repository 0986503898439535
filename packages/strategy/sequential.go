package strategy

import (
	"context"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
)

// Sequential iterates declared specs in order on the calling goroutine.
// It is stateless; a single instance may be shared across runners.
type Sequential struct{}

// NewSequential returns the sequential strategy.
func NewSequential() *Sequential {
	return &Sequential{}
}

// Execute runs every spec in declaration order. Once bail is signaled,
// every subsequent sibling is recorded skipped without invoking the run
// delegate. Cancellation and hook failures propagate unmodified.
func (*Sequential) Execute(ctx context.Context, sc *StrategyContext) error {
	for i, spec := range sc.Specs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if sc.Bail.Triggered() {
			res := report.Skipped(spec, sc.Path)
			sc.Results[i] = res
			sc.notifySpec(res)
			continue
		}

		res, err := sc.RunSpec(ctx, spec)
		if err != nil {
			return err
		}
		sc.Results[i] = res
		sc.notifySpec(res)

		if res.Status == report.StatusFailed && sc.Bail != nil {
			sc.Bail.Signal()
		}
	}

	sc.notifyBatch()
	return nil
}
