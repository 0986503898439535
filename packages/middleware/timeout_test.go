package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
)

func TestTimeout_FastBodyPasses(t *testing.T) {
	ec := newExecContext("fast")
	raw := func(ctx context.Context, ec *ExecContext) (*report.Result, error) {
		return report.Passed(ec.Spec, ec.Path, time.Millisecond), nil
	}

	res, err := Chain(raw, Timeout(time.Second))(context.Background(), ec)
	require.NoError(t, err)
	assert.Equal(t, report.StatusPassed, res.Status)
}

func TestTimeout_SlowBodyFailsWithTimeout(t *testing.T) {
	ec := newExecContext("slow")
	raw := func(ctx context.Context, ec *ExecContext) (*report.Result, error) {
		select {
		case <-time.After(5 * time.Second):
			return report.Passed(ec.Spec, ec.Path, 0), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	res, err := Chain(raw, Timeout(20*time.Millisecond))(context.Background(), ec)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, report.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, ErrTimeout)
}

func TestTimeout_ExternalCancellationPropagates(t *testing.T) {
	ec := newExecContext("cancelled")
	ctx, cancel := context.WithCancel(context.Background())

	raw := func(ctx context.Context, ec *ExecContext) (*report.Result, error) {
		cancel()
		<-ctx.Done()
		return nil, ctx.Err()
	}

	res, err := Chain(raw, Timeout(time.Second))(ctx, ec)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTimeout_ZeroDisables(t *testing.T) {
	ec := newExecContext("s")
	raw := func(ctx context.Context, ec *ExecContext) (*report.Result, error) {
		_, hasDeadline := ctx.Deadline()
		assert.False(t, hasDeadline)
		return report.Passed(ec.Spec, ec.Path, 0), nil
	}

	res, err := Chain(raw, Timeout(0))(context.Background(), ec)
	require.NoError(t, err)
	assert.Equal(t, report.StatusPassed, res.Status)
}
