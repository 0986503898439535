// Package middleware implements the interception pipeline wrapped around
// each spec execution.
//
// A middleware receives the execution context and a next continuation and
// must invoke next zero times (short-circuit, typically producing a
// skipped result) or exactly one time. Retry is the sanctioned exception
// and may invoke next repeatedly. Middleware are composed by ordered
// registration: the first registered becomes the outermost wrapper.
//
// The (*report.Result, error) return splits the two propagation paths:
// results carry spec outcomes, while a non-nil error is the fatal escape
// (hook failure or cancellation) that every middleware must pass through
// unmodified.
package middleware
