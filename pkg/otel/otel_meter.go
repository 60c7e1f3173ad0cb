package otel

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
)

func setupMeter(ctx context.Context, resource *sdkresource.Resource) (*sdkmetric.MeterProvider, error) {
	var err error
	var exporter sdkmetric.Exporter

	if strings.ToLower(os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL")) == "grpc" || strings.ToLower(os.Getenv("OTEL_EXPORTER_OTLP_METRICS_PROTOCOL")) == "grpc" {
		exporter, err = otlpmetricgrpc.New(ctx)
	} else {
		exporter, err = otlpmetrichttp.New(ctx)
	}

	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(3*time.Second))),
		sdkmetric.WithResource(resource),
	)

	otel.SetMeterProvider(provider)

	return provider, nil
}

type instruments struct {
	requests metric.Int64Counter
	bytes    metric.Int64Counter
	duration metric.Float64Histogram
}

var (
	meterOnce sync.Once
	meterInst instruments
)

func meter() instruments {
	meterOnce.Do(func() {
		m := otel.Meter(instrumentationName)

		meterInst.requests, _ = m.Int64Counter("convey.requests",
			metric.WithDescription("Remote operations by outcome"),
		)

		meterInst.bytes, _ = m.Int64Counter("convey.bytes",
			metric.WithDescription("Bytes written to the destination"),
			metric.WithUnit("By"),
		)

		meterInst.duration, _ = m.Float64Histogram("convey.duration",
			metric.WithDescription("Duration of remote operations"),
			metric.WithUnit("s"),
		)
	})

	return meterInst
}

// Record reports one finished operation. Instruments created before Setup
// delegate to the provider installed later.
func Record(ctx context.Context, operation, outcome string, written int64, elapsed time.Duration) {
	m := meter()

	attrs := metric.WithAttributes(
		String("operation", operation),
		String("outcome", outcome),
	)

	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}

	if m.bytes != nil && written > 0 {
		m.bytes.Add(ctx, written, metric.WithAttributes(String("operation", operation)))
	}

	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
