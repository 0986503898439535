package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/runner"
)

// ConsoleReporter renders run progress as colored terminal output.
type ConsoleReporter struct {
	writer  io.Writer
	verbose bool
	noColor bool

	lastPath []string
}

type ConsoleOption func(*ConsoleReporter)

func NewConsoleReporter(opts ...ConsoleOption) *ConsoleReporter {
	r := &ConsoleReporter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.noColor {
		color.NoColor = true
	}
	return r
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(r *ConsoleReporter) {
		r.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(r *ConsoleReporter) {
		r.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(r *ConsoleReporter) {
		r.noColor = nc
	}
}

func (r *ConsoleReporter) OnRunStarting(info runner.RunInfo) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(r.writer, "%s %d specs\n\n", bold("Running:"), info.Specs)
	r.lastPath = nil
}

func (r *ConsoleReporter) OnSpecCompleted(res *report.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	r.printHeadings(res.Path)
	indent := strings.Repeat("  ", len(res.Path))

	switch res.Status {
	case report.StatusSkipped:
		fmt.Fprintf(r.writer, "%s%s %s\n", indent, yellow("-"), res.Spec.Description)
	case report.StatusPending:
		fmt.Fprintf(r.writer, "%s%s %s %s\n", indent, yellow("…"), res.Spec.Description, yellow("(pending)"))
	case report.StatusFailed:
		fmt.Fprintf(r.writer, "%s%s %s %s\n", indent, red("✗"), res.Spec.Description, cyan(fmt.Sprintf("(%dms)", res.Duration.Milliseconds())))
		if res.Err != nil {
			fmt.Fprintf(r.writer, "%s  %s %v\n", indent, red("→"), res.Err)
		}
	default:
		fmt.Fprintf(r.writer, "%s%s %s %s\n", indent, green("✓"), res.Spec.Description, cyan(fmt.Sprintf("(%dms)", res.Duration.Milliseconds())))
	}
}

// printHeadings emits context heading lines when the path changes,
// starting at the first segment that differs from the previous spec.
func (r *ConsoleReporter) printHeadings(path []string) {
	bold := color.New(color.Bold).SprintFunc()

	common := 0
	for common < len(path) && common < len(r.lastPath) && path[common] == r.lastPath[common] {
		common++
	}
	for i := common; i < len(path); i++ {
		indent := strings.Repeat("  ", i)
		fmt.Fprintf(r.writer, "%s%s\n", indent, bold(path[i]))
	}
	r.lastPath = append([]string(nil), path...)
}

func (r *ConsoleReporter) OnRunCompleted(rep *report.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	s := rep.Summary
	fmt.Fprintf(r.writer, "\nSpecs: ")
	if s.Passed > 0 {
		fmt.Fprintf(r.writer, "%s, ", green(fmt.Sprintf("%d passed", s.Passed)))
	}
	if s.Failed > 0 {
		fmt.Fprintf(r.writer, "%s, ", red(fmt.Sprintf("%d failed", s.Failed)))
	}
	if s.Pending > 0 {
		fmt.Fprintf(r.writer, "%s, ", yellow(fmt.Sprintf("%d pending", s.Pending)))
	}
	if s.Skipped > 0 {
		fmt.Fprintf(r.writer, "%s, ", yellow(fmt.Sprintf("%d skipped", s.Skipped)))
	}
	fmt.Fprintf(r.writer, "%d total\n", s.Total)
	fmt.Fprintf(r.writer, "Time:  %dms\n", rep.Duration.Milliseconds())

	if r.verbose {
		fmt.Fprintf(r.writer, "Run:   %s\n", rep.RunID)
	}
}
