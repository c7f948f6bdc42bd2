package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(nil)
	var mu sync.Mutex
	var got []string
	record := func(tag string) domoutbox.Handler {
		return func(_ context.Context, e domoutbox.Event) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, tag+":"+e.EventName())
			return nil
		}
	}
	bus.Subscribe("cart.line_changed", record("a"))
	bus.Subscribe("cart.line_changed", record("b"))
	bus.Start(context.Background())

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "cart.line_changed"}))
	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "unrouted"}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	bus.Stop(ctx)

	assert.ElementsMatch(t, []string{"a:cart.line_changed", "b:cart.line_changed"}, got)
}

func TestBusSurvivesFailingHandlers(t *testing.T) {
	bus := NewBus(nil)
	var calls int
	var mu sync.Mutex
	bus.Subscribe("evt", func(context.Context, domoutbox.Event) error { return errors.New("boom") })
	bus.Subscribe("evt", func(context.Context, domoutbox.Event) error { panic("bad handler") })
	bus.Subscribe("evt", func(context.Context, domoutbox.Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})
	bus.Start(context.Background())

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "evt"}))
	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "evt"}))
	bus.Stop(context.Background())

	assert.Equal(t, 2, calls)
}

func TestBusRejectsPublishAfterStop(t *testing.T) {
	bus := NewBus(nil)
	bus.Stop(context.Background())

	err := bus.Publish(context.Background(), testEvent{name: "evt"})
	assert.ErrorIs(t, err, ErrBusStopped)
	assert.NoError(t, bus.Publish(context.Background(), nil))
}
