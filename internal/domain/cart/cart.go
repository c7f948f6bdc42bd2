package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/money"
	"github.com/shopspring/decimal"
)

var ErrInvalidAction = errors.New("cart: action must be increase or decrease")

type Action int

const (
	Increase Action = iota + 1
	Decrease
)

// Step is the ordinary quantity delta of the action.
func (a Action) Step() int {
	switch a {
	case Increase:
		return 1
	case Decrease:
		return -1
	default:
		return 0
	}
}

func (a Action) Valid() bool { return a == Increase || a == Decrease }

func (a Action) String() string {
	switch a {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "unknown"
	}
}

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(s) {
	case "increase", "add":
		return Increase, nil
	case "decrease", "remove":
		return Decrease, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

type LineItem struct {
	Code      string
	Name      string
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Quantity  int
}

func (l LineItem) DiscountedUnitPrice() decimal.Decimal {
	return l.UnitPrice.Sub(l.Discount)
}

func (l LineItem) Total() decimal.Decimal {
	return l.DiscountedUnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Change reports what ApplyAction did to a line.
type Change struct {
	Code    string
	Action  Action
	Line    LineItem
	Created bool
	Removed bool
	// Ignored is set when a decrease targeted a code with no line.
	Ignored bool
}

// Cart holds at most one line per product code, in insertion order.
// It is not safe for concurrent use; callers own a cart per session.
type Cart struct {
	promos *promotion.Catalog
	format money.Formatter
	lines  []*LineItem
}

type Option func(*Cart)

// WithFormatter overrides the money formatter used by SummaryText.
func WithFormatter(f money.Formatter) Option {
	return func(c *Cart) {
		if f != nil {
			c.format = f
		}
	}
}

func New(promos *promotion.Catalog, opts ...Option) *Cart {
	if promos == nil {
		promos = promotion.Empty()
	}
	c := &Cart{promos: promos, format: money.Format}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ApplyAction runs one quantity change through the pricing pipeline:
// the ordinary step, then every applicable rule's quantity delta and a freshly
// derived discount, then removal of the line if its quantity dropped to zero.
// name and unitPrice are only used when the line is created.
func (c *Cart) ApplyAction(code, name string, unitPrice decimal.Decimal, action Action) Change {
	change := Change{Code: code, Action: action}
	if !action.Valid() {
		change.Ignored = true
		return change
	}

	idx := c.indexOf(code)
	if idx < 0 {
		if action != Increase {
			change.Ignored = true
			return change
		}
		c.lines = append(c.lines, &LineItem{Code: code, Name: name, UnitPrice: unitPrice})
		idx = len(c.lines) - 1
		change.Created = true
	}
	line := c.lines[idx]

	step := action.Step()
	line.Quantity += step

	quantity := line.Quantity
	delta := 0
	discount := decimal.Zero
	for _, rule := range c.promos.RulesFor(code) {
		delta += rule.QuantityDelta(step)
		discount = discount.Add(rule.FlatDiscount(quantity, line.UnitPrice))
	}
	line.Quantity += delta
	line.Discount = discount

	change.Line = *line
	if line.Quantity <= 0 {
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		change.Removed = true
	}
	return change
}

func (c *Cart) indexOf(code string) int {
	for i, l := range c.lines {
		if l.Code == code {
			return i
		}
	}
	return -1
}

// Line returns a copy of the line for code.
func (c *Cart) Line(code string) (LineItem, bool) {
	if c == nil {
		return LineItem{}, false
	}
	if idx := c.indexOf(code); idx >= 0 {
		return *c.lines[idx], true
	}
	return LineItem{}, false
}

// LineItems returns copies of the lines in insertion order.
func (c *Cart) LineItems() []LineItem {
	out := make([]LineItem, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// TotalDiscount sums each line's per-unit discount; it is not weighted by quantity.
func (c *Cart) TotalDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Discount)
	}
	return total
}

// TotalPriceWithDiscounts is TotalPrice minus TotalDiscount. TotalPrice already
// reflects discounts, so the two figures differ whenever a discount is active.
func (c *Cart) TotalPriceWithDiscounts() decimal.Decimal {
	return c.TotalPrice().Sub(c.TotalDiscount())
}

// SummaryText renders one "<name>(<quantity>) -> <line total>" row per line.
func (c *Cart) SummaryText() string {
	rows := make([]string, 0, len(c.lines))
	for _, l := range c.lines {
		rows = append(rows, fmt.Sprintf("%s(%d) -> %s", l.Name, l.Quantity, c.format(l.Total())))
	}
	return strings.Join(rows, "\n")
}

// Clone returns a deep copy sharing the immutable promotion catalog.
func (c *Cart) Clone() *Cart {
	clone := &Cart{promos: c.promos, format: c.format, lines: make([]*LineItem, len(c.lines))}
	for i, l := range c.lines {
		line := *l
		clone.lines[i] = &line
	}
	return clone
}
