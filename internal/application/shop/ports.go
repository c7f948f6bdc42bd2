package shop

import (
	"errors"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/display"
	"github.com/shopspring/decimal"
)

var (
	ErrCartNotFound   = errors.New("shop: cart not found")
	ErrUnknownProduct = errors.New("shop: unknown product")
)

type IDGenerator interface {
	NewID() string
}

// Snapshot is the full read model of one cart after reconciliation.
type Snapshot struct {
	CartID                  string
	Entries                 []display.Entry
	Lines                   []cart.LineItem
	TotalQuantity           int
	TotalPrice              decimal.Decimal
	TotalDiscount           decimal.Decimal
	TotalPriceWithDiscounts decimal.Decimal
	Summary                 string
	// CatalogEmpty signals the caller to show its empty state.
	CatalogEmpty bool
}

type ChangeQuantityCommand struct {
	CartID string
	Code   string
	Action cart.Action
}
