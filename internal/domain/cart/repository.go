package cart

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("cart: not found")
	ErrConflict = errors.New("cart: already exists")
)

// Repository stores carts by session identifier.
type Repository interface {
	Create(ctx context.Context, id string, c *Cart) error
	Get(ctx context.Context, id string) (*Cart, error)
	Update(ctx context.Context, id string, fn func(*Cart) error) (*Cart, error)
	Delete(ctx context.Context, id string) error
}
