package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Provider owns the SDK tracer provider installed as the global one.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// NewProvider installs an SDK tracer provider that writes spans to w as
// JSON. When enabled is false nothing is installed and Tracer returns a
// NoopTracer.
func NewProvider(enabled bool, serviceName string, w io.Writer) (*Provider, error) {
	if !enabled {
		return &Provider{}, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	return &Provider{provider: provider}, nil
}

// Tracer returns the tracer services should use.
func (p *Provider) Tracer() Tracer {
	if p.provider == nil {
		return NewNoop()
	}
	return NewOTel(WithOTelTracer(p.provider.Tracer(InstrumentationName)))
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
