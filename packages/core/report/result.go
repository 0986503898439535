package report

import (
	"time"

	"github.com/abdul-hamid-achik/specrun/packages/core/tree"
)

// Status is the terminal state of a single spec.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
	StatusSkipped Status = "skipped"
)

// Result records the outcome of one spec. Path is the full context path
// from the root down to the declaring context.
type Result struct {
	Spec     *tree.Spec
	Status   Status
	Path     []string
	Duration time.Duration
	Err      error
}

// Passed creates a passed result.
func Passed(spec *tree.Spec, path []string, d time.Duration) *Result {
	return &Result{Spec: spec, Status: StatusPassed, Path: path, Duration: d}
}

// Failed creates a failed result carrying the spec error.
func Failed(spec *tree.Spec, path []string, d time.Duration, err error) *Result {
	return &Result{Spec: spec, Status: StatusFailed, Path: path, Duration: d, Err: err}
}

// Pending creates a result for a bodiless spec.
func Pending(spec *tree.Spec, path []string) *Result {
	return &Result{Spec: spec, Status: StatusPending, Path: path}
}

// Skipped creates a result for a spec that never ran.
func Skipped(spec *tree.Spec, path []string) *Result {
	return &Result{Spec: spec, Status: StatusSkipped, Path: path}
}
