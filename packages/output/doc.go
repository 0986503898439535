// Package output provides reporters for displaying run results.
//
// Supported formats:
//   - Console: human-readable colored terminal output
//   - JSON: machine-readable document, schema published as ReportSchema
//   - TAP: Test Anything Protocol for CI integration
//
// Every reporter implements the runner.Reporter interface and writes to
// an injected io.Writer; the host owns files and transports.
package output
