package shop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/display"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability/logctx"
	"github.com/Zhima-Mochi/minishop-pos/internal/pkg/money"
)

const shopService = "shop-service"

type Service struct {
	source product.Source
	carts  cart.Repository
	promos *promotion.Catalog
	ids    IDGenerator
	format money.Formatter
	log    observability.Logger

	mu         sync.RWMutex
	products   []product.Product
	reconciler *display.Reconciler
}

func NewService(
	source product.Source,
	carts cart.Repository,
	promos *promotion.Catalog,
	ids IDGenerator,
	format money.Formatter,
	tel observability.Observability,
) *Service {
	if promos == nil {
		promos = promotion.Empty()
	}
	if format == nil {
		format = money.Format
	}
	if tel == nil {
		tel = observability.Nop()
	}
	return &Service{
		source:     source,
		carts:      carts,
		promos:     promos,
		ids:        ids,
		format:     format,
		log:        tel.Logger().With(observability.F("service", shopService)),
		reconciler: display.NewReconciler(nil, promos, format),
	}
}

// LoadCatalog fetches the product list once. A failing or empty source leaves
// the shop with an empty catalog; the failure is logged, never returned.
func (s *Service) LoadCatalog(ctx context.Context) int {
	logger := logctx.FromOr(ctx, s.log)

	var products []product.Product
	if s.source != nil {
		fetched, err := s.source.Products(ctx)
		if err != nil {
			logger.Warn("catalog_load_failed", observability.F("error", err))
		} else {
			products = fetched
		}
	}

	s.mu.Lock()
	s.products = append([]product.Product(nil), products...)
	s.reconciler = display.NewReconciler(products, s.promos, s.format)
	s.mu.Unlock()

	if len(products) == 0 {
		logger.Warn("catalog_empty")
	} else {
		logger.Info("catalog_loaded", observability.F("products", len(products)))
	}
	return len(products)
}

func (s *Service) Products() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]product.Product(nil), s.products...)
}

func (s *Service) Product(code string) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return product.Find(s.products, code)
}

// Promotions lists the active promotion rules in declaration order.
func (s *Service) Promotions() []promotion.Rule {
	return s.promos.Rules()
}

// Deals lists the promotion descriptions for code; empty when it has none.
func (s *Service) Deals(code string) []string {
	return s.promos.Descriptions(code)
}

func (s *Service) NewCart() *cart.Cart {
	return cart.New(s.promos, cart.WithFormatter(s.format))
}

func (s *Service) OpenCart(ctx context.Context) (string, error) {
	id := s.ids.NewID()
	if err := s.carts.Create(ctx, id, s.NewCart()); err != nil {
		return "", fmt.Errorf("shop: open cart: %w", err)
	}
	logctx.FromOr(ctx, s.log).Info("cart_opened", observability.F("cart_id", id))
	return id, nil
}

func (s *Service) CloseCart(ctx context.Context, id string) error {
	if err := s.carts.Delete(ctx, id); err != nil {
		return mapCartError(id, err)
	}
	logctx.FromOr(ctx, s.log).Info("cart_closed", observability.F("cart_id", id))
	return nil
}

func (s *Service) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	c, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, mapCartError(id, err)
	}
	return s.snapshot(id, c), nil
}

// snapshot reconciles the catalog against c; it runs after every mutation.
func (s *Service) snapshot(id string, c *cart.Cart) *Snapshot {
	s.mu.RLock()
	r := s.reconciler
	empty := len(s.products) == 0
	s.mu.RUnlock()

	return &Snapshot{
		CartID:                  id,
		Entries:                 r.Reconcile(c),
		Lines:                   c.LineItems(),
		TotalQuantity:           c.TotalQuantity(),
		TotalPrice:              c.TotalPrice(),
		TotalDiscount:           c.TotalDiscount(),
		TotalPriceWithDiscounts: c.TotalPriceWithDiscounts(),
		Summary:                 c.SummaryText(),
		CatalogEmpty:            empty,
	}
}

func mapCartError(id string, err error) error {
	if errors.Is(err, cart.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCartNotFound, id)
	}
	return err
}
