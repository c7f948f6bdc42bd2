package workerpresentation

import (
	"context"

	domcart "github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability/logctx"
)

const workerService = "cart_activity_worker"

// ActivityWorker follows cart events on the bus and turns them into metrics and logs.
type ActivityWorker struct {
	subscriber domoutbox.Subscriber
	log        observability.Logger
	events     observability.Counter // cart_events_total{event,code}
}

func NewActivityWorker(subscriber domoutbox.Subscriber, tel observability.Observability) *ActivityWorker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &ActivityWorker{
		subscriber: subscriber,
		log:        tel.Logger().With(observability.F("service", workerService)),
		events:     tel.Metrics().Counter(observability.MCartEvents),
	}
}

func (w *ActivityWorker) Start() {
	if w.subscriber == nil {
		return
	}
	w.subscriber.Subscribe(domcart.LineChangedEvent{}.EventName(), w.handle)
	w.subscriber.Subscribe(domcart.LineRemovedEvent{}.EventName(), w.handle)
}

func (w *ActivityWorker) handle(ctx context.Context, e domoutbox.Event) error {
	attrs := map[string]string{"event": e.EventName()}
	fields := []observability.Field{}
	var code string

	switch evt := e.(type) {
	case domcart.LineChangedEvent:
		code = evt.Code
		attrs["cart_id"] = evt.CartID
		fields = append(fields,
			observability.F("quantity", evt.Quantity),
			observability.F("discount", evt.Discount),
			observability.F("created", evt.Created),
		)
	case domcart.LineRemovedEvent:
		code = evt.Code
		attrs["cart_id"] = evt.CartID
	default:
		w.events.Add(1, observability.L("event", e.EventName()), observability.L("code", "ignored"))
		return nil
	}
	attrs["product_code"] = code

	ctx = WithEventContext(ctx, w.log, attrs)
	w.events.Add(1, observability.L("event", e.EventName()), observability.L("code", code))
	logctx.FromOr(ctx, w.log).Debug("cart_event_observed", fields...)
	return nil
}
