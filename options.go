package firecheck

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/firecheck/cache"
	"github.com/zero-day-ai/firecheck/check"
	"github.com/zero-day-ai/firecheck/schema"
)

// Option configures a Checker.
type Option func(*checkerConfig)

// checkerConfig holds configuration for a Checker instance.
type checkerConfig struct {
	schema   schema.Node
	checks   []check.Definition
	cache    cache.Cache
	logger   zerolog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	warnings bool
}

// WithSchema validates documents against node instead of the firebase.json
// schema.
func WithSchema(node schema.Node) Option {
	return func(c *checkerConfig) {
		c.schema = node
	}
}

// WithChecks adds custom CEL checks, run on documents that pass structural
// validation. Definitions accumulate across calls.
func WithChecks(defs ...check.Definition) Option {
	return func(c *checkerConfig) {
		c.checks = append(c.checks, defs...)
	}
}

// WithCache stores results keyed by document content. The checker does not
// close the cache.
func WithCache(store cache.Cache) Option {
	return func(c *checkerConfig) {
		c.cache = store
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *checkerConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer; each check becomes a
// "firecheck.check" span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *checkerConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for check counts, violation counts
// and durations.
func WithMeter(meter metric.Meter) Option {
	return func(c *checkerConfig) {
		c.meter = meter
	}
}

// WithWarnings controls whether ambiguous-union warnings are kept in
// reports. They are kept by default.
func WithWarnings(enabled bool) Option {
	return func(c *checkerConfig) {
		c.warnings = enabled
	}
}
