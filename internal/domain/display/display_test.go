package display

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureProducts() []product.Product {
	return []product.Product{
		{Code: promotion.CodeVoucher, Name: "Cabify Voucher", Price: decimal.NewFromInt(5)},
		{Code: promotion.CodeTShirt, Name: "Cabify T-Shirt", Price: decimal.NewFromInt(20)},
		{Code: promotion.CodeMug, Name: "Cabify Mug", Price: decimal.RequireFromString("7.50")},
	}
}

func apply(c *cart.Cart, code string, a cart.Action) {
	p, _ := product.Find(fixtureProducts(), code)
	c.ApplyAction(p.Code, p.Name, p.Price, a)
}

func TestReconcileEmptyCart(t *testing.T) {
	r := NewReconciler(fixtureProducts(), promotion.Default(), nil)

	entries := r.Reconcile(cart.New(promotion.Default()))

	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "0", e.Quantity)
		assert.Equal(t, e.OriginalPrice, e.DiscountedPrice)
	}
	assert.Equal(t, "€ 5.00", entries[0].OriginalPrice)
	assert.Equal(t, "€ 7.50", entries[2].OriginalPrice)
}

func TestReconcileFollowsCatalogOrder(t *testing.T) {
	c := cart.New(promotion.Default())
	apply(c, promotion.CodeMug, cart.Increase)
	apply(c, promotion.CodeVoucher, cart.Increase)

	entries := NewReconciler(fixtureProducts(), promotion.Default(), nil).Reconcile(c)

	var codes []string
	for _, e := range entries {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{promotion.CodeVoucher, promotion.CodeTShirt, promotion.CodeMug}, codes)
}

func TestReconcileReflectsLines(t *testing.T) {
	c := cart.New(promotion.Default())
	apply(c, promotion.CodeVoucher, cart.Increase)
	for range 3 {
		apply(c, promotion.CodeTShirt, cart.Increase)
	}

	entries := NewReconciler(fixtureProducts(), promotion.Default(), nil).Reconcile(c)

	assert.Equal(t, "€ 2.50", entries[0].DiscountedPrice)
	assert.Equal(t, "2", entries[0].Quantity)
	assert.Equal(t, "€ 19.00", entries[1].DiscountedPrice)
	assert.Equal(t, "€ 20.00", entries[1].OriginalPrice)
	assert.Equal(t, "3", entries[1].Quantity)
	assert.Equal(t, "0", entries[2].Quantity)
}

func TestReconcileRevertsRemovedLines(t *testing.T) {
	c := cart.New(promotion.Default())
	r := NewReconciler(fixtureProducts(), promotion.Default(), nil)

	apply(c, promotion.CodeVoucher, cart.Increase)
	require.Equal(t, "€ 2.50", r.Reconcile(c)[0].DiscountedPrice)

	apply(c, promotion.CodeVoucher, cart.Decrease)
	entry := r.Reconcile(c)[0]

	assert.Equal(t, "€ 5.00", entry.DiscountedPrice)
	assert.Equal(t, "0", entry.Quantity)
}

func TestReconcileDeals(t *testing.T) {
	entries := NewReconciler(fixtureProducts(), promotion.Default(), nil).Reconcile(nil)

	assert.True(t, entries[0].HasDeal())
	assert.Equal(t, []string{"2-for-1: Buy 2, get 1 free"}, entries[0].Deals)
	assert.True(t, entries[1].HasDeal())
	assert.False(t, entries[2].HasDeal())
}

func TestReconcileEmptyCatalog(t *testing.T) {
	entries := NewReconciler(nil, promotion.Default(), nil).Reconcile(cart.New(promotion.Default()))
	assert.Empty(t, entries)
}
