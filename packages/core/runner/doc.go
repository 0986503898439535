// Package runner orchestrates spec tree execution.
//
// It provides functionality for:
//   - Fluent run configuration through the Builder
//   - Recursive context walking with once-per-context hooks
//   - Sequential and bounded-parallel sibling scheduling
//   - Fail-fast (bail) semantics and cooperative cancellation
//   - Middleware registration (retry, timeout, filtering, rate limiting)
//   - Reporter event dispatch and result aggregation
//
// Spec-body failures are always recovered into failed results; hook
// failures and cancellation propagate unmodified out of Run.
package runner
