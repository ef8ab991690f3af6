package firecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/firecheck/cache"
	"github.com/zero-day-ai/firecheck/check"
	"github.com/zero-day-ai/firecheck/firebase"
	"github.com/zero-day-ai/firecheck/parser"
	"github.com/zero-day-ai/firecheck/schema"
)

// Format is the encoding of a Document.
type Format = parser.Format

// Document formats.
const (
	FormatAuto = parser.FormatAuto
	FormatJSON = parser.FormatJSON
	FormatYAML = parser.FormatYAML
)

// Checker decodes, validates and checks configuration documents. It is safe
// for concurrent use.
type Checker struct {
	schema   schema.Node
	checks   *check.Set
	cache    cache.Cache
	logger   zerolog.Logger
	tracer   trace.Tracer
	metrics  *checkerMetrics
	warnings bool

	// salt separates cache entries of checkers with different schemas or checks.
	salt string

	now func() time.Time
}

// New creates a Checker. Without options it validates firebase.json
// documents, caches nothing and emits no telemetry.
func New(opts ...Option) (*Checker, error) {
	cfg := checkerConfig{
		schema:   firebase.Schema(),
		cache:    cache.Nop{},
		logger:   zerolog.Nop(),
		tracer:   tracenoop.NewTracerProvider().Tracer("firecheck"),
		meter:    metricnoop.NewMeterProvider().Meter("firecheck"),
		warnings: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.schema == nil {
		return nil, NewConfigurationError("New", fmt.Errorf("%w: schema is nil", ErrInvalidConfig))
	}
	if cfg.cache == nil {
		cfg.cache = cache.Nop{}
	}

	checks, err := check.Compile(cfg.checks)
	if err != nil {
		return nil, NewConfigurationError("New", fmt.Errorf("%w: %w", ErrInvalidCheck, err))
	}

	metrics, err := newCheckerMetrics(cfg.meter)
	if err != nil {
		return nil, NewInternalError("New", err)
	}

	salt, err := saltFor(cfg.schema, cfg.checks)
	if err != nil {
		return nil, NewInternalError("New", err)
	}

	return &Checker{
		schema:   cfg.schema,
		checks:   checks,
		cache:    cfg.cache,
		logger:   cfg.logger,
		tracer:   cfg.tracer,
		metrics:  metrics,
		warnings: cfg.warnings,
		salt:     salt,
		now:      time.Now,
	}, nil
}

// Schema returns the node documents are validated against.
func (c *Checker) Schema() schema.Node {
	return c.schema
}

// Check validates one document. A document that cannot be decoded returns
// an *Error of KindDecode; a document that decodes but violates the schema
// returns a Report with Valid == false and a nil error.
func (c *Checker) Check(ctx context.Context, doc Document) (*Report, error) {
	const op = "Checker.Check"
	start := c.now()

	ctx, span := c.tracer.Start(ctx, "firecheck.check", trace.WithAttributes(
		attribute.String("firecheck.source", doc.Name),
		attribute.String("firecheck.format", doc.Format.String()),
		attribute.Int("firecheck.size", len(doc.Data)),
	))
	defer span.End()

	logger := c.logger.With().Str("source", doc.Name).Logger()

	fail := func(err *Error) (*Report, error) {
		err = err.WithContext(map[string]any{"source": doc.Name})
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.record(ctx, outcomeError, false, nil, c.now().Sub(start))
		logger.Debug().Err(err).Msg("check failed")
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return fail(NewInternalError(op, err))
	}

	key := cache.Key(doc.Format.String()+c.salt, doc.Data)
	res, cached := c.lookup(ctx, logger, key)

	if !cached {
		value, err := parser.Decode(doc.Data, doc.Format)
		if err != nil {
			return fail(NewDecodeError(op, err))
		}

		res = schema.Validate(value, c.schema)
		if res.Valid() && c.checks.Len() > 0 {
			res.Violations = append(res.Violations, c.checks.Evaluate(value)...)
		}
		c.store(ctx, logger, key, res)
	}

	report := &Report{
		ID:         uuid.NewString(),
		Source:     doc.Name,
		Valid:      res.Valid(),
		Violations: res.Violations,
		Cached:     cached,
		CheckedAt:  start.UTC(),
	}
	if c.warnings {
		report.Warnings = res.Warnings
	}

	outcome := outcomeValid
	if !report.Valid {
		outcome = outcomeInvalid
	}
	span.SetAttributes(
		attribute.Bool("firecheck.valid", report.Valid),
		attribute.Bool("firecheck.cached", cached),
		attribute.Int("firecheck.violations", len(report.Violations)),
		attribute.Int("firecheck.warnings", len(report.Warnings)),
	)
	if !report.Valid {
		span.SetStatus(codes.Error, "document has violations")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	c.metrics.record(ctx, outcome, cached, report.Violations, c.now().Sub(start))

	logger.Debug().
		Bool("valid", report.Valid).
		Bool("cached", cached).
		Int("violations", len(report.Violations)).
		Int("warnings", len(report.Warnings)).
		Dur("elapsed", c.now().Sub(start)).
		Msg("document checked")

	return report, nil
}

// lookup reads a cached result. Cache failures are logged and treated as
// misses.
func (c *Checker) lookup(ctx context.Context, logger zerolog.Logger, key string) (schema.Result, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("kind", KindCache).Msg("result cache read failed")
		return schema.Result{}, false
	}
	if !ok {
		return schema.Result{}, false
	}

	var res schema.Result
	if err := json.Unmarshal(data, &res); err != nil {
		logger.Warn().Err(err).Str("kind", KindCache).Msg("discarding corrupt cached result")
		return schema.Result{}, false
	}
	return res, true
}

func (c *Checker) store(ctx context.Context, logger zerolog.Logger, key string, res schema.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to encode result for cache")
		return
	}
	if err := c.cache.Set(ctx, key, data); err != nil {
		logger.Warn().Err(err).Str("kind", KindCache).Msg("result cache write failed")
	}
}

// saltFor fingerprints the schema and check definitions that shape a
// result, so checkers sharing a cache never read each other's entries.
func saltFor(node schema.Node, defs []check.Definition) (string, error) {
	shape, err := schema.MarshalJSONSchema(node, "")
	if err != nil {
		return "", err
	}
	parts := []string{string(shape)}
	for _, d := range defs {
		parts = append(parts, d.Name+"\x00"+d.Expr+"\x00"+d.Message)
	}
	return "\x00" + cache.Key("schema", []byte(strings.Join(parts, "\x01"))), nil
}
