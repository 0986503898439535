package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/runner"
)

// TAPReporter emits results in Test Anything Protocol format.
type TAPReporter struct {
	writer io.Writer
	count  int
}

type TAPOption func(*TAPReporter)

func NewTAPReporter(opts ...TAPOption) *TAPReporter {
	r := &TAPReporter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(r *TAPReporter) {
		r.writer = w
	}
}

func (r *TAPReporter) OnRunStarting(runner.RunInfo) {
	r.count = 0
	fmt.Fprintln(r.writer, "TAP version 13")
}

func (r *TAPReporter) OnSpecCompleted(res *report.Result) {
	r.count++
	name := strings.Join(append(append([]string(nil), res.Path...), res.Spec.Description), " > ")

	switch res.Status {
	case report.StatusSkipped:
		fmt.Fprintf(r.writer, "ok %d - %s # SKIP\n", r.count, name)
	case report.StatusPending:
		fmt.Fprintf(r.writer, "not ok %d - %s # TODO pending\n", r.count, name)
	case report.StatusFailed:
		fmt.Fprintf(r.writer, "not ok %d - %s\n", r.count, name)
		if res.Err != nil {
			fmt.Fprintf(r.writer, "  ---\n  error: %q\n  ...\n", res.Err.Error())
		}
	default:
		fmt.Fprintf(r.writer, "ok %d - %s\n", r.count, name)
	}
}

func (r *TAPReporter) OnRunCompleted(rep *report.Report) {
	fmt.Fprintf(r.writer, "1..%d\n", r.count)
	if rep.Summary.Failed > 0 {
		fmt.Fprintf(r.writer, "# failed %d of %d\n", rep.Summary.Failed, rep.Summary.Total)
	}
}
