package product

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is one purchasable catalog entry.
type Product struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Source supplies the ordered product catalog. It may fail or return nothing.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
}

// Find returns the first product with code.
func Find(products []Product, code string) (Product, bool) {
	for _, p := range products {
		if p.Code == code {
			return p, true
		}
	}
	return Product{}, false
}
