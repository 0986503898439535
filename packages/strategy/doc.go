// Package strategy implements the scheduling policies driving sibling
// spec execution within one context.
//
// Sequential runs declared specs in order on the calling goroutine.
// Parallel runs them on a bounded set of workers while keeping results in
// declaration order through pre-sized, index-addressed slots. Both honor
// bail (fail-fast) semantics and propagate cancellation to the caller
// rather than returning partial batches.
package strategy
