package runner

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/specrun/packages/metrics"
	"github.com/abdul-hamid-achik/specrun/packages/middleware"
	"github.com/abdul-hamid-achik/specrun/packages/strategy"
)

// Configuration errors are reported at configuration time, never
// deferred to Run.
var (
	ErrNilStrategy   = errors.New("runner: strategy must not be nil")
	ErrNilReporter   = errors.New("runner: reporter must not be nil")
	ErrNilMiddleware = errors.New("runner: middleware must not be nil")
)

// Builder assembles a Runner through fluent configuration. Every method
// returns the updated builder; Build yields an immutable Runner.
type Builder struct {
	strategy   strategy.Strategy
	bail       bool
	mws        []middleware.Middleware
	preds      []middleware.Predicate
	reporters  []Reporter
	logger     zerolog.Logger
	collector  *metrics.Collector
	err        error
}

// NewBuilder creates a builder defaulting to the sequential strategy and
// a no-op logger.
func NewBuilder() *Builder {
	return &Builder{
		strategy: strategy.NewSequential(),
		logger:   zerolog.Nop(),
	}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// WithSequential selects strict in-order execution of sibling specs.
func (b *Builder) WithSequential() *Builder {
	b.strategy = strategy.NewSequential()
	return b
}

// WithParallel selects bounded-parallel execution of sibling specs.
// A degree of zero or less means the logical processor count.
func (b *Builder) WithParallel(degree int) *Builder {
	b.strategy = strategy.NewParallel(degree)
	return b
}

// WithStrategy installs an explicit custom strategy, overriding any
// earlier concurrency configuration (last write wins). A nil strategy is
// a configuration error.
func (b *Builder) WithStrategy(s strategy.Strategy) *Builder {
	if s == nil {
		return b.fail(ErrNilStrategy)
	}
	b.strategy = s
	return b
}

// WithBail enables fail-fast: after the first failure, not-yet-started
// siblings are recorded skipped.
func (b *Builder) WithBail() *Builder {
	b.bail = true
	return b
}

// WithRetry registers retry middleware invoking each spec up to attempts
// times.
func (b *Builder) WithRetry(attempts int) *Builder {
	return b.Use(middleware.Retry(attempts))
}

// WithTimeout registers timeout middleware racing each spec against d.
func (b *Builder) WithTimeout(d time.Duration) *Builder {
	return b.Use(middleware.Timeout(d))
}

// WithFilter registers a filter: rejected specs are recorded skipped and
// their bodies never run. The predicate also decides whether a context's
// BeforeAll/AfterAll hooks fire at all.
func (b *Builder) WithFilter(pred middleware.Predicate) *Builder {
	if pred == nil {
		return b
	}
	b.preds = append(b.preds, pred)
	return b.Use(middleware.Filter(pred))
}

// WithTags keeps only specs carrying at least one of the given tags.
func (b *Builder) WithTags(tags ...string) *Builder {
	return b.WithFilter(middleware.ByTags(tags...))
}

// WithNamePattern keeps only specs whose description matches the glob
// pattern.
func (b *Builder) WithNamePattern(pattern string) *Builder {
	return b.WithFilter(middleware.ByName(pattern))
}

// WithRateLimit throttles spec starts through the given limiter.
func (b *Builder) WithRateLimit(limiter *rate.Limiter) *Builder {
	return b.Use(middleware.RateLimit(limiter))
}

// Use registers a middleware. The first registered middleware becomes
// the outermost wrapper.
func (b *Builder) Use(m middleware.Middleware) *Builder {
	if m == nil {
		return b.fail(ErrNilMiddleware)
	}
	b.mws = append(b.mws, m)
	return b
}

// AddReporter registers a reporter; events are dispatched in
// registration order.
func (b *Builder) AddReporter(r Reporter) *Builder {
	if r == nil {
		return b.fail(ErrNilReporter)
	}
	b.reporters = append(b.reporters, r)
	return b
}

// WithLogger installs a structured logger for debug tracing.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetrics installs a latency collector fed with every result.
func (b *Builder) WithMetrics(c *metrics.Collector) *Builder {
	b.collector = c
	return b
}

// Build validates the configuration and returns an immutable Runner.
func (b *Builder) Build() (*Runner, error) {
	if b.err != nil {
		return nil, b.err
	}
	r := &Runner{
		strategy:  b.strategy,
		bail:      b.bail,
		mws:       append([]middleware.Middleware(nil), b.mws...),
		preds:     append([]middleware.Predicate(nil), b.preds...),
		reporters: append([]Reporter(nil), b.reporters...),
		logger:    b.logger,
		collector: b.collector,
	}
	return r, nil
}
