package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/tree"
)

func result(status report.Status, d time.Duration) *report.Result {
	c := tree.NewContext("root")
	spec := c.AddSpec("s", nil)
	res := &report.Result{Spec: spec, Status: status, Path: c.Path(), Duration: d}
	if status == report.StatusFailed {
		res.Err = errors.New("failed")
	}
	return res
}

func TestCollector_Counters(t *testing.T) {
	c := NewCollector()
	c.Record(result(report.StatusPassed, 10*time.Millisecond))
	c.Record(result(report.StatusPassed, 20*time.Millisecond))
	c.Record(result(report.StatusFailed, 5*time.Millisecond))
	c.Record(result(report.StatusPending, 0))
	c.Record(result(report.StatusSkipped, 0))
	c.Record(nil)

	snap := c.Snapshot()
	assert.Equal(t, int64(5), snap.Total)
	assert.Equal(t, int64(2), snap.Passed)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(1), snap.Pending)
	assert.Equal(t, int64(1), snap.Skipped)
}

func TestCollector_LatencyPercentiles(t *testing.T) {
	c := NewCollector()
	for i := 1; i <= 100; i++ {
		c.Record(result(report.StatusPassed, time.Duration(i)*time.Millisecond))
	}

	snap := c.Snapshot()
	assert.InDelta(t, 50*time.Millisecond, snap.P50, float64(2*time.Millisecond))
	assert.InDelta(t, 95*time.Millisecond, snap.P95, float64(2*time.Millisecond))
	assert.InDelta(t, 100*time.Millisecond, snap.Max, float64(2*time.Millisecond))
	assert.Greater(t, snap.Mean, time.Duration(0))
}

func TestCollector_SkippedAndPendingCarryNoLatency(t *testing.T) {
	c := NewCollector()
	c.Record(result(report.StatusSkipped, time.Hour))
	c.Record(result(report.StatusPending, time.Hour))

	snap := c.Snapshot()
	assert.Equal(t, time.Duration(0), snap.Max)
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Record(result(report.StatusPassed, time.Millisecond))
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, int64(800), snap.Total)
	assert.Equal(t, int64(800), snap.Passed)
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.Record(result(report.StatusPassed, time.Millisecond))
	c.Reset()

	snap := c.Snapshot()
	assert.Equal(t, int64(0), snap.Total)
	assert.Equal(t, time.Duration(0), snap.P50)
}
