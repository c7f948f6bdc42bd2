package oteltrace

import (
	"context"

	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "minishop-pos"

type tracer struct{ t trace.Tracer }

// New returns a Tracer backed by the globally registered OTel TracerProvider.
func New(name string) observability.Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return &tracer{t: otel.Tracer(name)}
}

// NewWithProvider binds the tracer to an explicit provider instead of the global one.
func NewWithProvider(tp trace.TracerProvider, name string) observability.Tracer {
	if tp == nil {
		return New(name)
	}
	if name == "" {
		name = defaultTracerName
	}
	return &tracer{t: tp.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// an exporter is not configured here: install an sdktrace.TracerProvider with otel.SetTracerProvider to ship spans.
