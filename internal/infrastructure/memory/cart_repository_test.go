package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	domain "github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func increaseMug(c *domain.Cart) error {
	c.ApplyAction(promotion.CodeMug, "Cabify Mug", decimal.RequireFromString("7.50"), domain.Increase)
	return nil
}

func TestCartRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	require.NoError(t, repo.Create(ctx, "c1", domain.New(promotion.Default())))
	assert.ErrorIs(t, repo.Create(ctx, "c1", domain.New(promotion.Default())), domain.ErrConflict)

	updated, err := repo.Update(ctx, "c1", increaseMug)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalQuantity())

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalQuantity())

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err = repo.Get(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "c1"), domain.ErrNotFound)
}

func TestCartRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()
	require.NoError(t, repo.Create(ctx, "c1", domain.New(promotion.Default())))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	_ = increaseMug(got)

	stored, _ := repo.Get(ctx, "c1")
	assert.Equal(t, 0, stored.TotalQuantity())
}

func TestCartRepositoryUpdateFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()
	require.NoError(t, repo.Create(ctx, "c1", domain.New(promotion.Default())))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "c1", func(c *domain.Cart) error {
		_ = increaseMug(c)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, _ := repo.Get(ctx, "c1")
	assert.Equal(t, 0, stored.TotalQuantity())

	_, err = repo.Update(ctx, "missing", increaseMug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartRepositoryConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()
	require.NoError(t, repo.Create(ctx, "c1", domain.New(promotion.Default())))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, "c1", increaseMug)
		}()
	}
	wg.Wait()

	stored, _ := repo.Get(ctx, "c1")
	assert.Equal(t, 50, stored.TotalQuantity())
}
