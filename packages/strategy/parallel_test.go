package strategy

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/tree"
)

func TestNewParallel_DegreeClamping(t *testing.T) {
	tests := []struct {
		degree   int
		expected int
	}{
		{0, runtime.NumCPU()},
		{-1, runtime.NumCPU()},
		{8, 8},
		{1, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NewParallel(tt.degree).Degree())
	}
}

func TestParallel_OrderPreservedUnderContention(t *testing.T) {
	const n = 20
	c := tree.NewContext("root")
	for i := 0; i < n; i++ {
		delay := time.Duration(n-i) * time.Millisecond
		c.AddSpec("spec", func(ctx context.Context) error {
			// Later-declared specs finish earlier.
			time.Sleep(delay)
			return nil
		})
	}

	for _, degree := range []int{1, 3, n} {
		sc := NewStrategyContext(c, testDelegate(c.Path()))
		require.NoError(t, NewParallel(degree).Execute(context.Background(), sc))

		require.Len(t, sc.Results, n)
		seen := make(map[*tree.Spec]bool, n)
		for i, res := range sc.Results {
			require.NotNil(t, res, "missing result at slot %d with degree %d", i, degree)
			assert.Same(t, sc.Specs[i], res.Spec)
			assert.False(t, seen[res.Spec], "duplicate result for slot %d", i)
			seen[res.Spec] = true
		}
	}
}

func TestParallel_BailDegreeOne(t *testing.T) {
	c := tree.NewContext("root")
	c.AddSpec("fails", failBody)
	c.AddSpec("skipped", passBody)
	c.AddSpec("also skipped", passBody)

	sc := NewStrategyContext(c, testDelegate(c.Path()))
	sc.Bail = &Bail{}

	require.NoError(t, NewParallel(1).Execute(context.Background(), sc))

	assert.Equal(t, report.StatusFailed, sc.Results[0].Status)
	assert.Equal(t, report.StatusSkipped, sc.Results[1].Status)
	assert.Equal(t, report.StatusSkipped, sc.Results[2].Status)
}

func TestParallel_BailEveryResultRecorded(t *testing.T) {
	const n = 8
	c := tree.NewContext("root")
	c.AddSpec("fails fast", failBody)
	for i := 1; i < n; i++ {
		c.AddSpec("spec", func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			return nil
		})
	}

	sc := NewStrategyContext(c, testDelegate(c.Path()))
	sc.Bail = &Bail{}

	require.NoError(t, NewParallel(2).Execute(context.Background(), sc))

	// The race between mid-flight specs and the bail signal means the
	// split between passed and skipped is not deterministic, but every
	// slot must be filled and the failure recorded.
	var failed, other int
	for i, res := range sc.Results {
		require.NotNil(t, res, "missing result at slot %d", i)
		if res.Status == report.StatusFailed {
			failed++
		} else {
			other++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, n-1, other)
	assert.True(t, sc.Bail.Triggered())
}

func TestParallel_CancellationDiscardsPartialBatch(t *testing.T) {
	c := tree.NewContext("root")
	c.AddSpec("quick", passBody)
	for i := 0; i < 3; i++ {
		c.AddSpec("blocks", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	sc := NewStrategyContext(c, testDelegate(c.Path()))
	batchFired := false
	sc.OnBatchDone = func([]*report.Result) { batchFired = true }

	err := NewParallel(4).Execute(ctx, sc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, batchFired)
}

func TestParallel_CancelledBeforeStart(t *testing.T) {
	var executed atomic.Int32
	c := tree.NewContext("root")
	for i := 0; i < 5; i++ {
		c.AddSpec("spec", func(ctx context.Context) error {
			executed.Add(1)
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := NewStrategyContext(c, testDelegate(c.Path()))
	err := NewParallel(2).Execute(ctx, sc)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, int(executed.Load()), 5)
}

func TestParallel_BatchNotificationOnce(t *testing.T) {
	const n = 10
	c := tree.NewContext("root")
	for i := 0; i < n; i++ {
		c.AddSpec("spec", passBody)
	}

	sc := NewStrategyContext(c, testDelegate(c.Path()))
	var batches atomic.Int32
	var last []*report.Result
	sc.OnBatchDone = func(results []*report.Result) {
		batches.Add(1)
		last = results
	}

	require.NoError(t, NewParallel(4).Execute(context.Background(), sc))

	assert.Equal(t, int32(1), batches.Load())
	require.Len(t, last, n)
	for i, res := range last {
		require.NotNil(t, res)
		assert.Same(t, sc.Specs[i], res.Spec)
	}
}

func TestParallel_FatalDelegateErrorAborts(t *testing.T) {
	fatal := errors.New("hook failed")
	c := tree.NewContext("root")
	for i := 0; i < 4; i++ {
		c.AddSpec("spec", passBody)
	}

	sc := NewStrategyContext(c, func(ctx context.Context, spec *tree.Spec) (*report.Result, error) {
		return nil, fatal
	})

	err := NewParallel(2).Execute(context.Background(), sc)
	assert.ErrorIs(t, err, fatal)
}

func TestBail_NilDisabled(t *testing.T) {
	var b *Bail
	assert.False(t, b.Triggered())

	b = &Bail{}
	assert.False(t, b.Triggered())
	b.Signal()
	assert.True(t, b.Triggered())
}
