package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/tree"
	"github.com/abdul-hamid-achik/specrun/packages/metrics"
	"github.com/abdul-hamid-achik/specrun/packages/middleware"
	"github.com/abdul-hamid-achik/specrun/packages/strategy"
)

// ErrNilTree is returned when Run is given no spec tree.
var ErrNilTree = errors.New("runner: spec tree must not be nil")

// PanicError wraps a panic recovered from a spec body.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in spec: %v", e.Value)
}

// Runner executes a spec tree. Build one through the Builder; a Runner is
// immutable and safe to reuse across runs.
type Runner struct {
	strategy  strategy.Strategy
	bail      bool
	mws       []middleware.Middleware
	preds     []middleware.Predicate
	reporters []Reporter
	logger    zerolog.Logger
	collector *metrics.Collector
}

// runState carries per-run flags through the recursion.
type runState struct {
	bail     *strategy.Bail
	hasFocus bool
}

// Run walks the tree recursively: BeforeAll once per context, the
// configured strategy over the context's direct specs, recursion into
// child contexts in declared order, AfterAll once per context.
//
// Spec failures are part of the report; a hook failure or cancellation
// aborts the run and propagates unmodified, discarding partial results.
func (r *Runner) Run(ctx context.Context, root *tree.Context) (*report.Report, error) {
	if root == nil {
		return nil, ErrNilTree
	}

	start := time.Now()
	runID := report.NewRunID()

	info := RunInfo{RunID: runID, StartedAt: start, Specs: root.CountSpecs()}
	r.emit(func(rep Reporter) { rep.OnRunStarting(info) })
	r.logger.Debug().Str("run_id", runID).Int("specs", info.Specs).Msg("run starting")

	st := &runState{hasFocus: root.HasFocus()}
	if r.bail {
		st.bail = &strategy.Bail{}
	}

	rootReport, err := r.runContext(ctx, root, st)
	if err != nil {
		r.logger.Debug().Err(err).Msg("run aborted")
		return nil, err
	}

	rep := report.New(runID, rootReport, start, time.Since(start))
	r.emit(func(rr Reporter) { rr.OnRunCompleted(rep) })
	r.logger.Debug().
		Int("passed", rep.Summary.Passed).
		Int("failed", rep.Summary.Failed).
		Dur("duration", rep.Duration).
		Msg("run completed")
	return rep, nil
}

func (r *Runner) runContext(ctx context.Context, c *tree.Context, st *runState) (*report.ContextReport, error) {
	cr := &report.ContextReport{Description: c.Description}
	runnable := r.subtreeRunnable(c, st)

	r.logger.Debug().Strs("path", c.Path()).Bool("runnable", runnable).Msg("entering context")

	if runnable && c.BeforeAll != nil {
		if err := c.BeforeAll(ctx); err != nil {
			return nil, err
		}
	}

	if len(c.Specs()) > 0 {
		sc := strategy.NewStrategyContext(c, r.runSpecFunc(c, st))
		sc.HasFocus = st.hasFocus
		sc.Bail = st.bail
		sc.OnSpecDone = func(res *report.Result) {
			if r.collector != nil {
				r.collector.Record(res)
			}
		}
		sc.OnBatchDone = func(results []*report.Result) {
			for _, res := range results {
				res := res
				r.emit(func(rep Reporter) { rep.OnSpecCompleted(res) })
			}
		}

		if err := r.strategy.Execute(ctx, sc); err != nil {
			return nil, err
		}
		cr.Results = sc.Results
	}

	for _, child := range c.Children() {
		childReport, err := r.runContext(ctx, child, st)
		if err != nil {
			return nil, err
		}
		cr.Children = append(cr.Children, childReport)
	}

	if runnable && c.AfterAll != nil {
		if err := c.AfterAll(ctx); err != nil {
			return nil, err
		}
	}

	return cr, nil
}

// runSpecFunc builds the run-one-spec delegate for a context: the raw
// invocation (pending/focus checks, per-spec hook cascade, body with
// panic recovery) wrapped in the registered middleware chain.
func (r *Runner) runSpecFunc(c *tree.Context, st *runState) strategy.RunSpecFunc {
	path := c.Path()
	cascade := tree.HookCascade(c)

	raw := func(ctx context.Context, ec *middleware.ExecContext) (*report.Result, error) {
		spec := ec.Spec

		if spec.Pending() {
			return report.Pending(spec, path), nil
		}
		if st.hasFocus && !spec.Focused {
			return report.Skipped(spec, path), nil
		}

		for _, hook := range cascade.BeforeEach {
			if err := hook(ctx); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		err := runBody(ctx, spec.Body)
		duration := time.Since(start)

		// A body error while the context is already cancelled is
		// surfaced as cancellation, never as a failed result.
		if err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var res *report.Result
		if err != nil {
			res = report.Failed(spec, path, duration, err)
		} else {
			res = report.Passed(spec, path, duration)
		}

		for _, hook := range cascade.AfterEach {
			if err := hook(ctx); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	handler := middleware.Chain(raw, r.mws...)

	return func(ctx context.Context, spec *tree.Spec) (*report.Result, error) {
		ec := &middleware.ExecContext{Spec: spec, Context: c, Path: path}
		res, err := handler(ctx, ec)
		if err != nil {
			return nil, err
		}
		if res == nil {
			// A middleware swallowed the result without producing one.
			res = report.Skipped(spec, path)
		}
		r.logger.Debug().Str("spec", spec.Description).Str("status", string(res.Status)).Msg("spec done")
		return res, nil
	}
}

// subtreeRunnable reports whether any spec under c would actually
// execute given the configured filters and focus state. Contexts without
// runnable specs skip their BeforeAll/AfterAll hooks.
func (r *Runner) subtreeRunnable(c *tree.Context, st *runState) bool {
	for _, spec := range c.Specs() {
		if r.specRunnable(spec, st) {
			return true
		}
	}
	for _, child := range c.Children() {
		if r.subtreeRunnable(child, st) {
			return true
		}
	}
	return false
}

func (r *Runner) specRunnable(spec *tree.Spec, st *runState) bool {
	if spec.Pending() {
		return false
	}
	if st.hasFocus && !spec.Focused {
		return false
	}
	for _, pred := range r.preds {
		if !pred(spec) {
			return false
		}
	}
	return true
}

func runBody(ctx context.Context, body tree.SpecFunc) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec}
		}
	}()
	return body(ctx)
}
