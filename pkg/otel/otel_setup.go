package otel

import (
	"context"
	"errors"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"
)

type ShutdownFunc func(ctx context.Context) error

// Setup installs the default slog logger and, when TELEMETRY is set, the
// OTLP trace, metric and log pipelines. The returned func flushes them.
func Setup(ctx context.Context, service string) (ShutdownFunc, error) {
	if !EnableTelemetry {
		setupConsole()

		return func(context.Context) error {
			return nil
		}, nil
	}

	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(String("service.name", service)),
	)

	if err != nil {
		return nil, err
	}

	tracer, err := setupTracer(ctx, resource)

	if err != nil {
		return nil, err
	}

	meter, err := setupMeter(ctx, resource)

	if err != nil {
		return nil, errors.Join(err, tracer.Shutdown(ctx))
	}

	logger, err := setupLogger(ctx, resource)

	if err != nil {
		return nil, errors.Join(err, tracer.Shutdown(ctx), meter.Shutdown(ctx))
	}

	return func(ctx context.Context) error {
		return errors.Join(
			tracer.Shutdown(ctx),
			meter.Shutdown(ctx),
			logger.Shutdown(ctx),
		)
	}, nil
}
