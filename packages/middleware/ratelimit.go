package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
)

// RateLimit throttles spec starts through a shared limiter. The limiter
// is shared across concurrent workers, so under the parallel strategy it
// bounds the aggregate start rate of the whole sibling batch. A wait cut
// short by cancellation propagates as the fatal error path.
func RateLimit(limiter *rate.Limiter) Middleware {
	return Func(func(ctx context.Context, ec *ExecContext, next Next) (*report.Result, error) {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				return nil, err
			}
		}
		return next(ctx)
	})
}
