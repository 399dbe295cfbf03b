// Package otel wires OpenTelemetry tracing for the web process.
//
// Tracing is opt-in: spans leave the process only when an OTLP/HTTP collector
// endpoint is configured. The W3C trace-context propagator is installed either
// way so backend calls carry a traceparent header.
package otel

import (
	"context"
	"fmt"
	"strings"

	"github.com/meninasdigitais/eventos/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config controls trace export.
type Config struct {
	// Endpoint is the collector URL, for example http://collector:4318.
	Endpoint string `env:"MD_OTEL_ENDPOINT"`
	// Enabled turns export off without clearing Endpoint.
	Enabled bool `env:"MD_OTEL_ENABLED" envDefault:"true"`
	// SampleRatio applies to root spans; child spans follow their parent.
	SampleRatio float64 `env:"MD_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("telemetry config: %w", err)
	}
	return cfg, nil
}

// Exporting reports whether cfg sends spans anywhere.
func (c Config) Exporting() bool {
	return c.Enabled && strings.TrimSpace(c.Endpoint) != ""
}

// Setup installs the propagator and, when exporting, a batching tracer
// provider tagged with serviceName. The returned shutdown flushes pending
// spans and is a no-op when nothing is exported.
func Setup(ctx context.Context, serviceName string, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	otel.SetTextMapPropagator(propagation.TraceContext{})
	if !cfg.Exporting() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(cfg.Endpoint)))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(ratio)
}
