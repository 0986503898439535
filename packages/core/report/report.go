package report

import (
	"time"

	"github.com/google/uuid"
)

// Summary aggregates result counts. It is always derived from results,
// never set independently.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Pending int
	Skipped int
}

func (s *Summary) add(status Status) {
	s.Total++
	switch status {
	case StatusPassed:
		s.Passed++
	case StatusFailed:
		s.Failed++
	case StatusPending:
		s.Pending++
	case StatusSkipped:
		s.Skipped++
	}
}

func (s *Summary) merge(other Summary) {
	s.Total += other.Total
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.Pending += other.Pending
	s.Skipped += other.Skipped
}

// ContextReport is the per-context node of the report tree. Results and
// Children preserve declaration order.
type ContextReport struct {
	Description string
	Results     []*Result
	Children    []*ContextReport
}

// Summarize derives the summary for the subtree.
func (cr *ContextReport) Summarize() Summary {
	var s Summary
	for _, r := range cr.Results {
		if r != nil {
			s.add(r.Status)
		}
	}
	for _, child := range cr.Children {
		s.merge(child.Summarize())
	}
	return s
}

// Flatten returns all results of the subtree in declaration order:
// a context's own specs first, then each child context depth-first.
func (cr *ContextReport) Flatten() []*Result {
	out := make([]*Result, 0, len(cr.Results))
	out = append(out, cr.Results...)
	for _, child := range cr.Children {
		out = append(out, child.Flatten()...)
	}
	return out
}

// Report is the final output of a run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Root      *ContextReport
	Summary   Summary
}

// NewRunID generates a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// New builds a report from an aggregated context tree, deriving the
// summary from the result leaves. An empty runID gets a fresh one.
func New(runID string, root *ContextReport, startedAt time.Time, duration time.Duration) *Report {
	if runID == "" {
		runID = NewRunID()
	}
	r := &Report{
		RunID:     runID,
		StartedAt: startedAt,
		Duration:  duration,
		Root:      root,
	}
	if root != nil {
		r.Summary = root.Summarize()
	}
	return r
}

// Results returns every result in declaration order.
func (r *Report) Results() []*Result {
	if r.Root == nil {
		return nil
	}
	return r.Root.Flatten()
}

// Failed reports whether any spec failed.
func (r *Report) Failed() bool {
	return r.Summary.Failed > 0
}
