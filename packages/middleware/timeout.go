package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
)

// ErrTimeout marks a spec that exceeded its deadline.
var ErrTimeout = errors.New("spec timed out")

// Timeout races the rest of the pipeline against a deadline. On expiry it
// cancels the derived context and converts the outcome into a failed
// result wrapping ErrTimeout. Cancellation is cooperative only: a
// non-cooperating synchronous body cannot be interrupted, its goroutine
// is abandoned and drains once the body returns.
func Timeout(d time.Duration) Middleware {
	return Func(func(ctx context.Context, ec *ExecContext, next Next) (*report.Result, error) {
		if d <= 0 {
			return next(ctx)
		}

		tctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		type outcome struct {
			res *report.Result
			err error
		}
		done := make(chan outcome, 1)
		start := time.Now()

		go func() {
			res, err := next(tctx)
			done <- outcome{res: res, err: err}
		}()

		select {
		case out := <-done:
			if out.err != nil && ctx.Err() == nil && tctx.Err() != nil {
				// The deadline fired while the pipeline was unwinding;
				// the outcome is still a timeout, not a fatal abort.
				err := fmt.Errorf("%w after %s", ErrTimeout, d)
				return report.Failed(ec.Spec, ec.Path, time.Since(start), err), nil
			}
			return out.res, out.err
		case <-tctx.Done():
			if err := ctx.Err(); err != nil {
				// The outer context fired, not the deadline.
				return nil, err
			}
			err := fmt.Errorf("%w after %s", ErrTimeout, d)
			return report.Failed(ec.Spec, ec.Path, time.Since(start), err), nil
		}
	})
}
