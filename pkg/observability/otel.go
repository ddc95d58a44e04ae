package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const serviceVersion = "1.0.0"

// Config holds observability configuration.
type Config struct {
	// Enabled controls whether telemetry is exported over OTLP. When
	// false, Setup installs no-op providers and a stdout JSON logger.
	Enabled     bool
	ServiceName string
}

// Telemetry bundles the initialized providers and the application logger.
type Telemetry struct {
	Logger *slog.Logger

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
}

// Setup initializes tracing, metrics, and logging for the service.
// Exporters use OTLP over HTTP and are configured through the standard
// OTEL_EXPORTER_OTLP_ENDPOINT / OTEL_EXPORTER_OTLP_HEADERS variables.
func Setup(ctx context.Context, cfg Config) (*Telemetry, error) {
	t := &Telemetry{}

	if !cfg.Enabled {
		t.tracerProvider = sdktrace.NewTracerProvider()
		t.meterProvider = sdkmetric.NewMeterProvider()
		t.loggerProvider = sdklog.NewLoggerProvider()
		t.Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
		otel.SetTracerProvider(t.tracerProvider)
		otel.SetMeterProvider(t.meterProvider)
		return t, nil
	}

	res, err := newResource(ctx, cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	headers := parseOTLPHeaders()

	traceOpts := []otlptracehttp.Option{otlptracehttp.WithTimeout(10 * time.Second)}
	if headers != nil {
		traceOpts = append(traceOpts, otlptracehttp.WithHeaders(headers))
	}
	// Exporters get context.Background() so shutdown of the startup
	// context cannot hang exporter creation.
	traceExporter, err := otlptracehttp.New(context.Background(), traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	t.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)
	otel.SetTracerProvider(t.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithTimeout(10 * time.Second)}
	if headers != nil {
		metricOpts = append(metricOpts, otlpmetrichttp.WithHeaders(headers))
	}
	metricExporter, err := otlpmetrichttp.New(context.Background(), metricOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	t.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(15*time.Second),
		)),
	)
	otel.SetMeterProvider(t.meterProvider)

	logOpts := []otlploghttp.Option{otlploghttp.WithTimeout(10 * time.Second)}
	if headers != nil {
		logOpts = append(logOpts, otlploghttp.WithHeaders(headers))
	}
	logExporter, err := otlploghttp.New(context.Background(), logOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}
	t.loggerProvider = sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter,
			sdklog.WithExportTimeout(5*time.Second),
		)),
		sdklog.WithResource(res),
	)
	t.Logger = otelslog.NewLogger(cfg.ServiceName, otelslog.WithLoggerProvider(t.loggerProvider))

	return t, nil
}

// Shutdown flushes and stops all providers. Errors are joined so a
// failing provider does not mask the others.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.loggerProvider != nil {
		errs = append(errs, t.loggerProvider.Shutdown(ctx))
	}
	if t.meterProvider != nil {
		errs = append(errs, t.meterProvider.Shutdown(ctx))
	}
	if t.tracerProvider != nil {
		errs = append(errs, t.tracerProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// newResource merges the default SDK resource with service attributes.
// Additional attributes can be set via OTEL_RESOURCE_ATTRIBUTES.
func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	serviceResource, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
		resource.WithSchemaURL(semconv.SchemaURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service resource: %w", err)
	}

	res, err := resource.Merge(resource.Default(), serviceResource)
	if err != nil {
		// Partial resources and schema URL conflicts are non-fatal.
		if errors.Is(err, resource.ErrPartialResource) || errors.Is(err, resource.ErrSchemaURLConflict) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to merge resources: %w", err)
	}
	return res, nil
}

// parseOTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS and URL-decodes the
// values. The OTLP spec requires URL encoding but the Go SDK does not
// always decode it, which breaks hosted collectors.
func parseOTLPHeaders() map[string]string {
	raw := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")
	if raw == "" {
		return nil
	}

	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		value, err := url.QueryUnescape(kv[1])
		if err != nil {
			value = kv[1]
		}
		headers[strings.TrimSpace(kv[0])] = value
	}
	return headers
}
