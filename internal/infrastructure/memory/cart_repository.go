package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
)

// CartRepository keeps one cart per session for the lifetime of the process.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]*domain.Cart),
	}
}

func (r *CartRepository) Create(ctx context.Context, id string, c *domain.Cart) error {
	_ = ctx
	if id == "" || c == nil {
		return fmt.Errorf("cart repository: id and cart are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.carts[id]; exists {
		return domain.ErrConflict
	}
	r.carts[id] = c.Clone()
	return nil
}

func (r *CartRepository) Get(ctx context.Context, id string) (*domain.Cart, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Clone(), nil
}

// Update runs fn against the stored cart while holding the write lock, so each
// mutation is one atomic transition. The stored cart is replaced only if fn succeeds.
func (r *CartRepository) Update(ctx context.Context, id string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	r.carts[id] = working
	return working.Clone(), nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

func (r *CartRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}
