package cart

import (
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/outbox"
)

// LineChangedEvent is emitted after a quantity change leaves the line in the cart.
type LineChangedEvent struct {
	CartID     string
	Code       string
	Action     string
	Quantity   int
	Discount   string
	Created    bool
	OccurredAt time.Time
}

func (LineChangedEvent) EventName() string { return "cart.line_changed" }

// LineRemovedEvent is emitted when a line's quantity reaches zero and it leaves the cart.
type LineRemovedEvent struct {
	CartID     string
	Code       string
	Action     string
	OccurredAt time.Time
}

func (LineRemovedEvent) EventName() string { return "cart.line_removed" }

// EventFor maps a Change to its domain event; ignored changes yield nil.
func EventFor(cartID string, ch Change) outbox.Event {
	now := time.Now().UTC()
	switch {
	case ch.Ignored:
		return nil
	case ch.Removed:
		return LineRemovedEvent{
			CartID:     cartID,
			Code:       ch.Code,
			Action:     ch.Action.String(),
			OccurredAt: now,
		}
	default:
		return LineChangedEvent{
			CartID:     cartID,
			Code:       ch.Code,
			Action:     ch.Action.String(),
			Quantity:   ch.Line.Quantity,
			Discount:   ch.Line.Discount.StringFixed(2),
			Created:    ch.Created,
			OccurredAt: now,
		}
	}
}
