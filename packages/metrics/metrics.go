// Package metrics collects spec latency and status counts for a run.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
)

// Collector aggregates per-spec durations and status counts. It is safe
// for concurrent use by parallel workers.
type Collector struct {
	total   atomic.Int64
	passed  atomic.Int64
	failed  atomic.Int64
	pending atomic.Int64
	skipped atomic.Int64

	mu sync.Mutex
	// Latencies in microseconds, 1us to 60s range, 3 significant digits.
	histogram *hdrhistogram.Histogram
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record folds one result into the collector. Only executed specs
// (passed or failed) contribute latency samples.
func (c *Collector) Record(res *report.Result) {
	if res == nil {
		return
	}
	c.total.Add(1)

	switch res.Status {
	case report.StatusPassed:
		c.passed.Add(1)
	case report.StatusFailed:
		c.failed.Add(1)
	case report.StatusPending:
		c.pending.Add(1)
		return
	case report.StatusSkipped:
		c.skipped.Add(1)
		return
	}

	latencyUs := res.Duration.Microseconds()
	if latencyUs < 1 {
		latencyUs = 1
	}
	if latencyUs > 60_000_000 {
		latencyUs = 60_000_000
	}

	c.mu.Lock()
	_ = c.histogram.RecordValue(latencyUs)
	c.mu.Unlock()
}

// Snapshot is a point-in-time view of the collected metrics.
type Snapshot struct {
	Total   int64
	Passed  int64
	Failed  int64
	Pending int64
	Skipped int64

	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// Snapshot returns the current counters and latency percentiles.
func (c *Collector) Snapshot() Snapshot {
	s := Snapshot{
		Total:   c.total.Load(),
		Passed:  c.passed.Load(),
		Failed:  c.failed.Load(),
		Pending: c.pending.Load(),
		Skipped: c.skipped.Load(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.histogram.TotalCount() > 0 {
		s.P50 = time.Duration(c.histogram.ValueAtQuantile(50)) * time.Microsecond
		s.P95 = time.Duration(c.histogram.ValueAtQuantile(95)) * time.Microsecond
		s.P99 = time.Duration(c.histogram.ValueAtQuantile(99)) * time.Microsecond
		s.Max = time.Duration(c.histogram.Max()) * time.Microsecond
		s.Mean = time.Duration(c.histogram.Mean()) * time.Microsecond
	}
	return s
}

// Reset clears all counters and samples.
func (c *Collector) Reset() {
	c.total.Store(0)
	c.passed.Store(0)
	c.failed.Store(0)
	c.pending.Store(0)
	c.skipped.Store(0)

	c.mu.Lock()
	c.histogram.Reset()
	c.mu.Unlock()
}
