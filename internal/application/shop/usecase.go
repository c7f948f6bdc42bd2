package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/application"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
	domoutbox "github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability/logctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	useCaseChangeQuantity = "cart.change_quantity"
	spanPrefix            = "UC."
	changeQuantitySpan    = "ChangeQuantity"
	publishPeer           = "outbox"
	publishTimeout        = 300 * time.Millisecond
)

// ChangeQuantityUseCase applies one increase/decrease to a session cart and
// returns the reconciled snapshot.
type ChangeQuantityUseCase struct {
	svc          *Service
	publisher    domoutbox.Publisher
	log          observability.Logger
	tracer       observability.Tracer
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	extCounter   observability.Counter
	extHistogram observability.Histogram
}

func NewChangeQuantityUseCase(svc *Service, publisher domoutbox.Publisher, tel observability.Observability) *ChangeQuantityUseCase {
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()
	return &ChangeQuantityUseCase{
		svc:          svc,
		publisher:    publisher,
		log:          tel.Logger().With(observability.F("service", shopService)),
		tracer:       tel.Tracer(),
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
	}
}

func (uc *ChangeQuantityUseCase) Execute(ctx context.Context, cmd ChangeQuantityCommand) (_ *Snapshot, err error) {
	ctx, logger := logctx.Enrich(ctx, uc.log,
		observability.F("use_case", useCaseChangeQuantity),
		observability.F("cart_id", cmd.CartID),
		observability.F("product_code", cmd.Code),
		observability.F("action", cmd.Action.String()),
	)

	ctx, span := uc.tracer.Start(ctx, spanPrefix+changeQuantitySpan,
		attribute.String("use_case", useCaseChangeQuantity),
		attribute.String("cart.id", cmd.CartID),
		attribute.String("product.code", cmd.Code),
		attribute.String("cart.action", cmd.Action.String()),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"
	var change cart.Change
	var publishErr error

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, statusText)
		} else {
			span.SetStatus(codes.Ok, statusText)
		}
		span.End()

		latency := time.Since(start).Seconds()
		uc.reqCounter.Add(1,
			observability.L("use_case", useCaseChangeQuantity),
			observability.L("outcome", outcome),
		)
		uc.durHistogram.Observe(latency,
			observability.L("use_case", useCaseChangeQuantity),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", latency),
			observability.F("quantity", change.Line.Quantity),
			observability.F("removed", change.Removed),
			observability.F("ignored", change.Ignored),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if publishErr != nil {
			fields = append(fields, observability.F("event_error", publishErr.Error()))
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}

		logger.Info("use_case_done", fields...)
	}()

	if !cmd.Action.Valid() {
		outcome, statusText = "rejected", "INVALID_ACTION"
		return nil, cart.ErrInvalidAction
	}

	// A decrease never creates a line, so an unknown code falls through to a no-op.
	p, ok := uc.svc.Product(cmd.Code)
	if !ok {
		if cmd.Action != cart.Increase {
			p.Code = cmd.Code
		} else {
			outcome, statusText = "rejected", "UNKNOWN_PRODUCT"
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, cmd.Code)
		}
	}

	updated, err := uc.svc.carts.Update(ctx, cmd.CartID, func(c *cart.Cart) error {
		change = c.ApplyAction(p.Code, p.Name, p.Price, cmd.Action)
		return nil
	})
	if err != nil {
		outcome, statusText = "error", "CART_UPDATE_FAILED"
		if errors.Is(err, cart.ErrNotFound) {
			outcome, statusText = "rejected", "CART_NOT_FOUND"
		}
		return nil, mapCartError(cmd.CartID, err)
	}

	span.AddEvent("cart.quantity_changed",
		trace.WithAttributes(
			attribute.Int("line.quantity", change.Line.Quantity),
			attribute.Bool("line.removed", change.Removed),
		),
	)

	// The mutation is committed; an event that cannot be published is logged, not returned.
	if evt := cart.EventFor(cmd.CartID, change); evt != nil {
		if publishErr = uc.publish(ctx, evt); publishErr != nil {
			statusText = "EVENT_PUBLISH_FAILED"
		}
	}

	return uc.svc.snapshot(cmd.CartID, updated), nil
}

func (uc *ChangeQuantityUseCase) publish(ctx context.Context, event domoutbox.Event) error {
	if uc.publisher == nil {
		return nil
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	start := time.Now()
	err := uc.publisher.Publish(pubCtx, event)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	uc.extCounter.Add(1,
		observability.L("peer", publishPeer),
		observability.L("endpoint", event.EventName()),
		observability.L("outcome", outcome),
	)
	uc.extHistogram.Observe(time.Since(start).Seconds(),
		observability.L("peer", publishPeer),
		observability.L("endpoint", event.EventName()),
	)
	return err
}

var _ application.UseCase[ChangeQuantityCommand, *Snapshot] = (*ChangeQuantityUseCase)(nil)
