package repository

import (
	"context"

	"roots-catalog/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products whose name contains keyword (case-insensitive),
	// oldest first. An empty keyword matches every product.
	List(ctx context.Context, keyword string, limit, offset int) ([]model.Product, error)

	// Count returns the number of products matching keyword.
	Count(ctx context.Context, keyword string) (int, error)

	// GetByID retrieves a single product by its ID. It returns nil, nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites the editable fields and updated_at of an existing product.
	// Returns model.ErrProductNotFound if no row matches.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns model.ErrProductNotFound if no row matches.
	Delete(ctx context.Context, id string) error
}
