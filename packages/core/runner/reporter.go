package runner

import (
	"time"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
)

// RunInfo describes a starting run.
type RunInfo struct {
	RunID     string
	StartedAt time.Time
	Specs     int
}

// Reporter receives run lifecycle events. OnSpecCompleted fires once per
// spec in declaration order, not completion order; every registered
// reporter receives every event independently of the others.
type Reporter interface {
	OnRunStarting(info RunInfo)
	OnSpecCompleted(res *report.Result)
	OnRunCompleted(rep *report.Report)
}

// A panicking reporter is isolated: the panic is recovered and logged so
// one reporter cannot abort the run or starve the others.
func (r *Runner) emit(fn func(Reporter)) {
	for _, rep := range r.reporters {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Warn().Interface("panic", rec).Msg("reporter panicked")
				}
			}()
			fn(rep)
		}()
	}
}
