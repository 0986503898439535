package middleware

import (
	"context"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/tree"
)

// ExecContext describes the spec currently being executed.
type ExecContext struct {
	Spec    *tree.Spec
	Context *tree.Context
	Path    []string
}

// Next continues the pipeline toward the raw spec invocation.
type Next func(ctx context.Context) (*report.Result, error)

// Handler is a fully composed pipeline: the raw spec invocation wrapped
// in every registered middleware.
type Handler func(ctx context.Context, ec *ExecContext) (*report.Result, error)

// Middleware wraps a single spec execution.
type Middleware interface {
	Run(ctx context.Context, ec *ExecContext, next Next) (*report.Result, error)
}

// Func adapts a plain function to the Middleware interface.
type Func func(ctx context.Context, ec *ExecContext, next Next) (*report.Result, error)

func (f Func) Run(ctx context.Context, ec *ExecContext, next Next) (*report.Result, error) {
	return f(ctx, ec, next)
}

// Chain folds middlewares around the raw invocation so that the first
// registered middleware is the outermost wrapper.
func Chain(raw Handler, mws ...Middleware) Handler {
	return func(ctx context.Context, ec *ExecContext) (*report.Result, error) {
		next := func(ctx context.Context) (*report.Result, error) {
			return raw(ctx, ec)
		}
		for i := len(mws) - 1; i >= 0; i-- {
			mw, inner := mws[i], next
			next = func(ctx context.Context) (*report.Result, error) {
				return mw.Run(ctx, ec, inner)
			}
		}
		return next(ctx)
	}
}
