package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/runner"
)

// JSONReport is the complete JSON output document.
type JSONReport struct {
	RunID    string      `json:"runId"`
	Time     string      `json:"time"`
	Duration float64     `json:"duration"` // milliseconds
	Summary  JSONSummary `json:"summary"`
	Root     JSONContext `json:"root"`
}

// JSONSummary mirrors the derived summary.
type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Pending int `json:"pending"`
	Skipped int `json:"skipped"`
}

// JSONContext is one context node of the report tree.
type JSONContext struct {
	Description string        `json:"description"`
	Specs       []JSONSpec    `json:"specs,omitempty"`
	Children    []JSONContext `json:"children,omitempty"`
}

// JSONSpec is a single spec result.
type JSONSpec struct {
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Duration    float64  `json:"duration"` // milliseconds
	Tags        []string `json:"tags,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// JSONReporter emits the full run as one JSON document on run
// completion.
type JSONReporter struct {
	writer io.Writer
	err    error
}

type JSONOption func(*JSONReporter)

func NewJSONReporter(opts ...JSONOption) *JSONReporter {
	r := &JSONReporter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(r *JSONReporter) {
		r.writer = w
	}
}

func (r *JSONReporter) OnRunStarting(runner.RunInfo) {}

func (r *JSONReporter) OnSpecCompleted(*report.Result) {}

func (r *JSONReporter) OnRunCompleted(rep *report.Report) {
	doc := JSONReport{
		RunID:    rep.RunID,
		Time:     rep.StartedAt.Format(time.RFC3339),
		Duration: float64(rep.Duration.Milliseconds()),
		Summary: JSONSummary{
			Total:   rep.Summary.Total,
			Passed:  rep.Summary.Passed,
			Failed:  rep.Summary.Failed,
			Pending: rep.Summary.Pending,
			Skipped: rep.Summary.Skipped,
		},
		Root: convertContext(rep.Root),
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	r.err = enc.Encode(doc)
}

// Err returns the last encoding error, if any.
func (r *JSONReporter) Err() error {
	return r.err
}

func convertContext(cr *report.ContextReport) JSONContext {
	if cr == nil {
		return JSONContext{}
	}
	jc := JSONContext{Description: cr.Description}
	for _, res := range cr.Results {
		if res == nil {
			continue
		}
		spec := JSONSpec{
			Description: res.Spec.Description,
			Status:      string(res.Status),
			Duration:    float64(res.Duration.Milliseconds()),
			Tags:        res.Spec.Tags,
		}
		if res.Err != nil {
			spec.Error = res.Err.Error()
		}
		jc.Specs = append(jc.Specs, spec)
	}
	for _, child := range cr.Children {
		jc.Children = append(jc.Children, convertContext(child))
	}
	return jc
}
