package middleware

import (
	"context"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
)

// ResultMap rewrites the result returned by the rest of the pipeline as a
// pure post-processing step, e.g. converting known-flaky failures into
// passes. The fatal error path is passed through untouched and nil
// results are not handed to fn.
func ResultMap(fn func(*report.Result) *report.Result) Middleware {
	return Func(func(ctx context.Context, ec *ExecContext, next Next) (*report.Result, error) {
		res, err := next(ctx)
		if err != nil || res == nil || fn == nil {
			return res, err
		}
		return fn(res), nil
	})
}
