package middleware

import (
	"context"
	"strings"

	"github.com/abdul-hamid-achik/specrun/packages/core/report"
	"github.com/abdul-hamid-achik/specrun/packages/core/tree"
)

// Predicate decides whether a spec should run.
type Predicate func(*tree.Spec) bool

// Filter short-circuits the pipeline for specs the predicate rejects,
// recording a skipped result without ever invoking next. The spec body
// and its per-spec hooks never run.
func Filter(pred Predicate) Middleware {
	return Func(func(ctx context.Context, ec *ExecContext, next Next) (*report.Result, error) {
		if pred != nil && !pred(ec.Spec) {
			return report.Skipped(ec.Spec, ec.Path), nil
		}
		return next(ctx)
	})
}

// ByTags builds a predicate keeping specs carrying at least one of the
// given tags. With no tags every spec is kept.
func ByTags(tags ...string) Predicate {
	return func(s *tree.Spec) bool {
		if len(tags) == 0 {
			return true
		}
		for _, tag := range tags {
			if s.HasTag(tag) {
				return true
			}
		}
		return false
	}
}

// ByName builds a predicate matching spec descriptions against a simple
// glob pattern: a leading or trailing * matches a suffix, prefix or
// substring; anything else is an exact match.
func ByName(pattern string) Predicate {
	return func(s *tree.Spec) bool {
		return matchesPattern(s.Description, pattern)
	}
}

func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	leading := strings.HasPrefix(pattern, "*")
	trailing := strings.HasSuffix(pattern, "*")

	switch {
	case leading && trailing:
		return strings.Contains(name, pattern[1:len(pattern)-1])
	case leading:
		return strings.HasSuffix(name, pattern[1:])
	case trailing:
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	default:
		return name == pattern
	}
}
