// Package telemetry installs OpenTelemetry providers for the CLI.
//
// The library packages only use the global providers; this package decides
// where their spans and metrics go for one process:
//
//   - none: keep the no-op globals.
//   - stdout: pretty-printed spans and metrics on the given writer.
//   - prometheus: metrics collected in a private registry and dumped in
//     the text exposition format on shutdown.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrUnknownExporter indicates an exporter name Setup does not know.
var ErrUnknownExporter = errors.New("telemetry: unknown exporter")

// ShutdownFunc flushes and stops the installed providers.
type ShutdownFunc func(context.Context) error

// Setup installs global providers for exporter, writing to w, and returns
// the function that flushes them.
func Setup(exporter, version string, w io.Writer) (ShutdownFunc, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", "lvfst"),
		attribute.String("service.version", version),
	)

	switch exporter {
	case "", "none":
		return func(context.Context) error { return nil }, nil

	case "stdout":
		spans, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		metrics, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(spans),
			sdktrace.WithResource(res),
		)
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metrics)),
			sdkmetric.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)

		return func(ctx context.Context) error {
			return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
		}, nil

	case "prometheus":
		reg := prometheus.NewRegistry()
		reader, err := otelprom.New(otelprom.WithRegisterer(reg))
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(reader),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(mp)

		return func(ctx context.Context) error {
			dumpErr := dump(reg, w)
			return errors.Join(dumpErr, mp.Shutdown(ctx))
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, exporter)
	}
}

// dump writes every metric family in reg in the text exposition format.
func dump(reg *prometheus.Registry, w io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}

	return nil
}
