package strategy

import (
	"context"
	"sync/atomic"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/tree"
)

// RunSpecFunc executes one spec through the hook cascade, the middleware
// pipeline and the body, returning its result. A non-nil error is fatal
// (hook failure or cancellation) and aborts the batch.
type RunSpecFunc func(ctx context.Context, spec *tree.Spec) (*report.Result, error)

// Bail is the shared fail-fast signal. The check-then-signal discipline
// is deliberately racy: a worker already past its check may still start,
// so the number of specs starting after a failure is not minimal, only
// the skipping of not-yet-started specs is guaranteed. Do not add
// heavier synchronization here.
type Bail struct {
	triggered atomic.Bool
}

// Signal marks the batch as bailed.
func (b *Bail) Signal() {
	b.triggered.Store(true)
}

// Triggered reports whether bail was signaled. A nil Bail means bail is
// disabled and never triggers.
func (b *Bail) Triggered() bool {
	return b != nil && b.triggered.Load()
}

// StrategyContext carries everything a strategy needs to run the sibling
// specs of one context. Results is pre-sized so that slot i always holds
// the result for Specs[i] regardless of completion order; each worker
// writes exclusively to its own index, which keeps the hot path free of
// locks.
type StrategyContext struct {
	Context  *tree.Context
	Specs    []*tree.Spec
	Path     []string
	Results  []*report.Result
	HasFocus bool

	// Bail enables fail-fast when non-nil.
	Bail *Bail

	RunSpec RunSpecFunc

	// OnSpecDone fires per completed spec. Under the parallel strategy
	// it fires in completion order and may be called concurrently.
	OnSpecDone func(*report.Result)
	// OnBatchDone fires exactly once after all siblings resolve,
	// carrying the complete ordered result list. It does not fire when
	// the batch aborts fatally.
	OnBatchDone func([]*report.Result)
}

// NewStrategyContext builds a context over the direct specs of c with a
// pre-sized result slot per spec.
func NewStrategyContext(c *tree.Context, run RunSpecFunc) *StrategyContext {
	specs := c.Specs()
	return &StrategyContext{
		Context: c,
		Specs:   specs,
		Path:    c.Path(),
		Results: make([]*report.Result, len(specs)),
		RunSpec: run,
	}
}

func (sc *StrategyContext) notifySpec(res *report.Result) {
	if sc.OnSpecDone != nil {
		sc.OnSpecDone(res)
	}
}

func (sc *StrategyContext) notifyBatch() {
	if sc.OnBatchDone != nil {
		sc.OnBatchDone(sc.Results)
	}
}

// Strategy schedules the sibling specs of one context.
type Strategy interface {
	Execute(ctx context.Context, sc *StrategyContext) error
}
