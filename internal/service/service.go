package service

import (
	"context"

	"roots-catalog/internal/model"
)

// ProductService defines operations for catalogue administration.
type ProductService interface {
	// List returns one page of products whose name contains keyword.
	// Pages are numbered from 1; values below 1 are treated as 1.
	List(ctx context.Context, keyword string, page int) (*model.ProductPage, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// CreateSample inserts a placeholder product for the admin to edit.
	CreateSample(ctx context.Context) (*model.Product, error)

	// Update replaces every editable field of a product.
	Update(ctx context.Context, id string, update model.ProductUpdate) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}

// UploadService defines operations for product image uploads.
type UploadService interface {
	// Upload validates an image and stores it, returning the reference to put
	// in a product's image field.
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}
