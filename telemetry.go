package firecheck

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zero-day-ai/firecheck/schema"
)

// Outcome labels for the firecheck.checks counter.
const (
	outcomeValid   = "valid"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// checkerMetrics holds the OpenTelemetry metric instruments for a Checker.
// They are created once in New and reused for every check.
type checkerMetrics struct {
	// checks increments once per Check call, labelled by outcome and cache hit
	checks metric.Int64Counter

	// violations counts reported violations, labelled by kind
	violations metric.Int64Counter

	// duration records Check latency in milliseconds
	duration metric.Float64Histogram
}

func newCheckerMetrics(meter metric.Meter) (*checkerMetrics, error) {
	m := &checkerMetrics{}
	var err error

	m.checks, err = meter.Int64Counter(
		"firecheck.checks",
		metric.WithDescription("Number of documents checked"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create checks counter: %w", err)
	}

	m.violations, err = meter.Int64Counter(
		"firecheck.violations",
		metric.WithDescription("Number of violations reported"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create violations counter: %w", err)
	}

	m.duration, err = meter.Float64Histogram(
		"firecheck.check.duration",
		metric.WithDescription("Check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return m, nil
}

// record emits the metrics for one finished check. violations is nil for a
// check that failed before validation.
func (m *checkerMetrics) record(ctx context.Context, outcome string, cached bool, violations []schema.Violation, elapsed time.Duration) {
	m.checks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("cached", cached),
	))

	byKind := make(map[schema.ViolationKind]int64)
	for _, v := range violations {
		byKind[v.Kind]++
	}
	for kind, n := range byKind {
		m.violations.Add(ctx, n, metric.WithAttributes(attribute.String("kind", string(kind))))
	}

	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
