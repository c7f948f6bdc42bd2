package prometrics

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterAndHistogramRegisterOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg, "pos", "")

	c1 := r.Counter("cart_events_total", "help", "event")
	c2 := r.Counter("cart_events_total", "help", "event")
	c1.Add(1, observability.L("event", "a"))
	c2.Bind(observability.L("event", "a")).Add(2)

	h := r.Histogram("latency_seconds", "help", nil, "use_case")
	h.Observe(0.1, observability.L("use_case", "x"))
	h.Bind(observability.L("use_case", "x")).Observe(0.2)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 2)

	byName := map[string]float64{}
	for _, mf := range families {
		m := mf.GetMetric()[0]
		if mf.GetType().String() == "COUNTER" {
			byName[mf.GetName()] = m.GetCounter().GetValue()
		} else {
			byName[mf.GetName()] = float64(m.GetHistogram().GetSampleCount())
		}
	}
	assert.Equal(t, 3.0, byName["pos_cart_events_total"])
	assert.Equal(t, 2.0, byName["pos_latency_seconds"])
}

func TestSeparateRegistriesReuseExistingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()

	New(reg, "", "").Counter("dup_total", "help", "k").Add(1, observability.L("k", "v"))
	New(reg, "", "").Counter("dup_total", "help", "k").Add(1, observability.L("k", "v"))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, 2.0, families[0].GetMetric()[0].GetCounter().GetValue())
}
