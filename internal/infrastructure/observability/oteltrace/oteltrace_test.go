package oteltrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func parentContext(t *testing.T) (context.Context, trace.SpanContext) {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc), sc
}

func TestNewWithProviderStoresSpanOnContext(t *testing.T) {
	ctx, parent := parentContext(t)
	tr := NewWithProvider(noop.NewTracerProvider(), "")

	child, span := tr.Start(ctx, "UC.ChangeQuantity", attribute.String("use_case", "cart.change_quantity"))
	defer span.End()

	assert.Equal(t, parent.TraceID(), span.SpanContext().TraceID())
	assert.Equal(t, span.SpanContext(), trace.SpanContextFromContext(child))
}

func TestNewWithNilProviderFallsBackToGlobal(t *testing.T) {
	tr := NewWithProvider(nil, "catalog")
	require.NotNil(t, tr)

	ctx, span := tr.Start(context.Background(), "HTTP GET products.list")
	defer span.End()
	assert.NotNil(t, ctx)
	assert.False(t, span.IsRecording())
}
