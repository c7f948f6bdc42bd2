// Package display projects the product catalog and a cart into per-product
// display entries.
package display

import (
	"strconv"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/money"
)

// Entry is the display record for one catalog product.
type Entry struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	OriginalPrice   string   `json:"original_price"`
	DiscountedPrice string   `json:"discounted_price"`
	Quantity        string   `json:"quantity"`
	Deals           []string `json:"deals,omitempty"`
}

// HasDeal reports whether the deal-info affordance should be shown.
func (e Entry) HasDeal() bool { return len(e.Deals) > 0 }

// LineLookup is the cart read surface the reconciler needs.
type LineLookup interface {
	Line(code string) (cart.LineItem, bool)
}

type Reconciler struct {
	products []product.Product
	promos   *promotion.Catalog
	format   money.Formatter
}

func NewReconciler(products []product.Product, promos *promotion.Catalog, format money.Formatter) *Reconciler {
	if format == nil {
		format = money.Format
	}
	if promos == nil {
		promos = promotion.Empty()
	}
	return &Reconciler{
		products: append([]product.Product(nil), products...),
		promos:   promos,
		format:   format,
	}
}

// Reconcile derives one entry per catalog product, in catalog order. Products
// without a cart line show their original price and a zero quantity.
func (r *Reconciler) Reconcile(lines LineLookup) []Entry {
	entries := make([]Entry, 0, len(r.products))
	for _, p := range r.products {
		original := r.format(p.Price)
		e := Entry{
			Code:            p.Code,
			Name:            p.Name,
			OriginalPrice:   original,
			DiscountedPrice: original,
			Quantity:        "0",
		}
		if lines != nil {
			if line, ok := lines.Line(p.Code); ok {
				e.DiscountedPrice = r.format(line.DiscountedUnitPrice())
				e.Quantity = strconv.Itoa(line.Quantity)
			}
		}
		if r.promos.HasDeal(p.Code) {
			e.Deals = r.promos.Descriptions(p.Code)
		}
		entries = append(entries, e)
	}
	return entries
}
