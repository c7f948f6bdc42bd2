package catalog

import (
	"context"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
	"github.com/shopspring/decimal"
)

// StaticSource serves a fixed product list.
type StaticSource struct {
	products []product.Product
	err      error
}

func NewStaticSource(products ...product.Product) *StaticSource {
	return &StaticSource{products: append([]product.Product(nil), products...)}
}

// NewFailingSource returns a source whose every fetch fails with err.
func NewFailingSource(err error) *StaticSource {
	return &StaticSource{err: err}
}

// DefaultProducts is the shop's standard three-product catalog.
func DefaultProducts() []product.Product {
	return []product.Product{
		{Code: promotion.CodeVoucher, Name: "Cabify Voucher", Price: decimal.NewFromInt(5)},
		{Code: promotion.CodeTShirt, Name: "Cabify T-Shirt", Price: decimal.NewFromInt(20)},
		{Code: promotion.CodeMug, Name: "Cabify Mug", Price: decimal.RequireFromString("7.50")},
	}
}

func (s *StaticSource) Products(ctx context.Context) ([]product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return append([]product.Product(nil), s.products...), nil
}
