// SPDX-License-Identifier: MIT
// Package: lvfst/index
//
// telemetry.go: OpenTelemetry spans and metrics for index operations.
//
// Instruments are taken from the global providers, which are no-ops until
// the application installs real ones. Nothing here starts goroutines.

package index

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvfst/core"
)

const instrumentationName = "github.com/katalvlaran/lvfst/index"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)
)

var (
	operationLatency metric.Float64Histogram
	operationTotal   metric.Int64Counter
	indexKeys        metric.Int64Gauge
	searchResults    metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		operationLatency, err = meter.Float64Histogram(
			"lvfst_index_operation_duration_seconds",
			metric.WithDescription("Duration of index operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		operationTotal, err = meter.Int64Counter(
			"lvfst_index_operation_total",
			metric.WithDescription("Total number of index operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		indexKeys, err = meter.Int64Gauge(
			"lvfst_index_keys",
			metric.WithDescription("Number of keys in the last built or loaded index"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchResults, err = meter.Int64Histogram(
			"lvfst_index_search_results",
			metric.WithDescription("Number of keys yielded per search stream"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

func startOperationSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "lvfst.index."+operation,
		trace.WithAttributes(append(attrs, attribute.String("index.operation", operation))...),
	)
}

func endOperationSpan(span trace.Span, resultCount int, err error) {
	span.SetAttributes(
		attribute.Int("index.result_count", resultCount),
		attribute.Bool("index.success", err == nil),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func recordOperationMetrics(ctx context.Context, operation string, d time.Duration, success bool) {
	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	)
	operationLatency.Record(ctx, d.Seconds(), attrs)
	operationTotal.Add(ctx, 1, attrs)
}

// observe runs a build or load as one traced, measured operation. fn
// returns the resulting store.
func observe(operation, kind string, fn func() (*core.Store, error)) (*core.Store, error) {
	ctx, span := startOperationSpan(context.Background(), operation, attribute.String("index.kind", kind))
	start := time.Now()

	st, err := fn()
	n := 0
	if err == nil {
		n = st.Len()
		if initMetrics() == nil {
			indexKeys.Record(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
		}
	}
	recordOperationMetrics(ctx, operation, time.Since(start), err == nil)
	endOperationSpan(span, n, err)

	return st, err
}

// InstrumentedStream wraps a core.Streamer in a span that ends, with the
// number of keys yielded, when the stream is exhausted or closed.
type InstrumentedStream struct {
	inner     core.Streamer
	ctx       context.Context
	span      trace.Span
	operation string
	start     time.Time
	count     int
	done      bool
}

// Instrument starts a span named after operation as a child of ctx and
// returns s wrapped to end it. Call Close if the stream is abandoned
// before its end.
func Instrument(ctx context.Context, operation string, s core.Streamer) *InstrumentedStream {
	ctx, span := startOperationSpan(ctx, operation)

	return &InstrumentedStream{inner: s, ctx: ctx, span: span, operation: operation, start: time.Now()}
}

// Next forwards to the wrapped stream.
func (s *InstrumentedStream) Next() ([]byte, core.Output, bool) {
	if s.done {
		return nil, core.Zero, false
	}
	k, out, ok := s.inner.Next()
	if !ok {
		s.Close()
		return nil, core.Zero, false
	}
	s.count++

	return k, out, true
}

// Count returns the number of keys yielded so far.
func (s *InstrumentedStream) Count() int { return s.count }

// Close ends the span and records the result count. Later calls to Next
// report the end of the stream. Close is idempotent.
func (s *InstrumentedStream) Close() {
	if s.done {
		return
	}
	s.done = true
	if initMetrics() == nil {
		searchResults.Record(s.ctx, int64(s.count), metric.WithAttributes(attribute.String("operation", s.operation)))
	}
	recordOperationMetrics(s.ctx, s.operation, time.Since(s.start), true)
	endOperationSpan(s.span, s.count, nil)
}
