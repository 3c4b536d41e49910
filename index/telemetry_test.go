package index_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/index"
)

func TestTelemetry_SpansAndMetrics(t *testing.T) {
	ctx := context.Background()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
	})

	s, err := index.NewSet([]string{"a", "b"})
	require.NoError(t, err)
	_, err = index.LoadMap(s.Bytes())
	require.ErrorIs(t, err, index.ErrKind)
	assert.Len(t, core.CollectStrings(index.Instrument(ctx, "range", s.Stream())), 2)

	spans := map[string]sdktrace.ReadOnlySpan{}
	for _, sp := range rec.Ended() {
		spans[sp.Name()] = sp
	}
	require.Contains(t, spans, "lvfst.index.build")
	require.Contains(t, spans, "lvfst.index.load")
	require.Contains(t, spans, "lvfst.index.range")
	assert.Contains(t, spans["lvfst.index.range"].Attributes(), attribute.Int("index.result_count", 2))
	assert.Contains(t, spans["lvfst.index.load"].Attributes(), attribute.Bool("index.success", false))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}
	for _, want := range []string{
		"lvfst_index_operation_duration_seconds",
		"lvfst_index_operation_total",
		"lvfst_index_keys",
		"lvfst_index_search_results",
	} {
		assert.True(t, names[want], want)
	}
}
