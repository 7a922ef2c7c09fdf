package config

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mpapenbr/greenhell-go/version"
)

type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Shutdown flushes pending spans and metrics
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return errors.Join(
		t.tracerProvider.Shutdown(ctx),
		t.meterProvider.Shutdown(ctx),
	)
}

func SetupTelemetry(ctx context.Context) (*Telemetry, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", "greenhell"),
		attribute.String("service.version", version.Version),
	)

	setupCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	traceExporter, err := otlptracegrpc.New(setupCtx,
		otlptracegrpc.WithEndpoint(TelemetryEndpoint),
		otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, err
	}
	metricExporter, err := otlpmetricgrpc.New(setupCtx,
		otlpmetricgrpc.WithEndpoint(TelemetryEndpoint),
		otlpmetricgrpc.WithInsecure())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(5*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	return &Telemetry{tracerProvider: tp, meterProvider: mp}, nil
}
