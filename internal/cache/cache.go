// Package cache keeps product details in Redis between reads so the edit screen
// does not hit PostgreSQL on every load.
package cache

import (
	"context"

	"roots-catalog/internal/model"
)

// ProductCache is a best-effort product detail cache. Implementations log their
// own failures; a miss and a failure look the same to callers.
type ProductCache interface {
	// Get returns the cached product, or nil on a miss.
	Get(ctx context.Context, id string) *model.Product

	// Set stores product under its ID.
	Set(ctx context.Context, product *model.Product)

	// Invalidate drops the cached product.
	Invalidate(ctx context.Context, id string)
}

type nopCache struct{}

// NewNop returns a cache that never stores anything.
func NewNop() ProductCache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) *model.Product { return nil }
func (nopCache) Set(context.Context, *model.Product) {}
func (nopCache) Invalidate(context.Context, string) {}
