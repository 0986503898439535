package middleware

import (
	"context"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
)

// Retry re-invokes the rest of the pipeline up to attempts times,
// returning the first passed result or the final failed one after
// exhaustion. Pending and skipped results are returned immediately.
// Shared state read by the spec body (an attempt counter, say) stays
// visible across retries since the same body closure runs each time.
func Retry(attempts int) Middleware {
	if attempts < 1 {
		attempts = 1
	}
	return Func(func(ctx context.Context, ec *ExecContext, next Next) (*report.Result, error) {
		var res *report.Result
		for i := 0; i < attempts; i++ {
			var err error
			res, err = next(ctx)
			if err != nil {
				return nil, err
			}
			if res == nil || res.Status != report.StatusFailed {
				return res, nil
			}
		}
		return res, nil
	})
}
