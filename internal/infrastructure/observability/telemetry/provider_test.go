package telemetry

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/stretchr/testify/assert"
)

type countingCounter struct{ total float64 }

func (c *countingCounter) Add(d float64, _ ...observability.Label) { c.total += d }
func (c *countingCounter) Bind(...observability.Label) observability.BoundCounter {
	return observability.NopCounter().Bind()
}

func TestProviderFallsBackToNop(t *testing.T) {
	p := New(nil, nil, nil, nil)

	assert.NotNil(t, p.Tracer())
	assert.NotNil(t, p.Logger())
	assert.NotPanics(t, func() {
		p.Metrics().Counter(observability.MCartEvents).Add(1)
		p.Metrics().Histogram(observability.MUsecaseDuration).Observe(1)
		_, span := p.Tracer().Start(context.Background(), "noop")
		span.End()
	})
}

func TestProviderResolvesRegisteredCounters(t *testing.T) {
	c := &countingCounter{}
	p := New(nil, nil, map[observability.MetricKey]observability.Counter{observability.MCartEvents: c}, nil)

	p.Metrics().Counter(observability.MCartEvents).Add(2)
	p.Metrics().Counter(observability.MHTTPRequests).Add(5)

	assert.Equal(t, 2.0, c.total)
}
