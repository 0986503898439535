// Package report defines execution results and their aggregation.
//
// A Result is produced exactly once per executed spec and is immutable
// afterwards. Results are aggregated into a nested Report mirroring the
// context tree, with a Summary that is always derived from the results
// themselves (Total == Passed+Failed+Pending+Skipped holds by
// construction).
package report
